package field

import (
	"fmt"
	"math/bits"
)

// Declares a state of an enumeration, optionally with an explicit code
type Declaration struct {
	Name string
	// Explicit code. If nil, the code follows the previous one
	Code *uint32
}

// Declares a state taking the next sequential code
func Sequential(name string) Declaration {
	return Declaration{Name: name}
}

// Declares a state with an explicit code. The states declared after it
// continue counting from code + 1
func Explicit(name string, code uint32) Declaration {
	return Declaration{Name: name, Code: &code}
}

// The code assigned to an enumeration state
type Assignment struct {
	Name     string
	Code     uint32
	Explicit bool
}

func (a Assignment) String() string {
	return fmt.Sprintf("%v = %v", a.Name, a.Code)
}

// Assigns codes to a list of states. Codes start at 0 and increase by one
// in declaration order; an explicit code restarts the sequence from it.
func AssignCodes(declarations []Declaration) []Assignment {
	assignments := make([]Assignment, len(declarations))
	next := uint32(0)

	for i, declaration := range declarations {
		assignments[i] = Assignment{
			Name: declaration.Name,
			Code: next,
		}

		if declaration.Code != nil {
			assignments[i].Code = *declaration.Code
			assignments[i].Explicit = true
		}

		next = assignments[i].Code + 1
	}

	return assignments
}

// Returns the minimum number of bits a field needs to hold every assigned code
func CodeBits(assignments []Assignment) int {
	maxCode := uint32(0)

	for _, assignment := range assignments {
		maxCode = max(maxCode, assignment.Code)
	}

	return max(1, bits.Len32(maxCode))
}

// Returns the first assignment with the given code
func Lookup(assignments []Assignment, raw uint32) (Assignment, bool) {
	for _, assignment := range assignments {
		if assignment.Code == raw {
			return assignment, true
		}
	}

	return Assignment{}, false
}
