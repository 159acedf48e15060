package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignCodes_Sequential(t *testing.T) {
	assignments := AssignCodes([]Declaration{Sequential("A"), Sequential("B"), Sequential("C")})

	assert.Equal(t, []Assignment{
		{Name: "A", Code: 0},
		{Name: "B", Code: 1},
		{Name: "C", Code: 2},
	}, assignments)
}

func TestAssignCodes_ExplicitFirst(t *testing.T) {
	assignments := AssignCodes([]Declaration{Explicit("A", 4), Sequential("B")})

	assert.Equal(t, uint32(4), assignments[0].Code)
	assert.True(t, assignments[0].Explicit)
	assert.Equal(t, uint32(5), assignments[1].Code)
	assert.False(t, assignments[1].Explicit)
}

func TestAssignCodes_ExplicitGoingBackwards(t *testing.T) {
	assignments := AssignCodes([]Declaration{Sequential("A"), Sequential("B"), Explicit("C", 0), Sequential("D")})

	assert.Equal(t, []uint32{0, 1, 0, 1}, []uint32{assignments[0].Code, assignments[1].Code, assignments[2].Code, assignments[3].Code})
}

func TestAssignCodes_Empty(t *testing.T) {
	assert.Empty(t, AssignCodes(nil))
}

func TestCodeBits(t *testing.T) {
	assert.Equal(t, 1, CodeBits(nil))
	assert.Equal(t, 1, CodeBits(AssignCodes([]Declaration{Sequential("A"), Sequential("B")})))
	assert.Equal(t, 2, CodeBits(AssignCodes([]Declaration{Sequential("A"), Sequential("B"), Sequential("C")})))
	assert.Equal(t, 8, CodeBits(AssignCodes([]Declaration{Explicit("A", 0xff)})))
}

func TestLookup(t *testing.T) {
	assignments := AssignCodes([]Declaration{Sequential("OFF"), Sequential("ON")})

	found, ok := Lookup(assignments, 1)
	assert.True(t, ok)
	assert.Equal(t, "ON", found.Name)

	_, ok = Lookup(assignments, 2)
	assert.False(t, ok)
}
