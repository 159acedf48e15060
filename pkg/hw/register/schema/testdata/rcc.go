//go:build ignore

package rcc

//regc:enum
type State uint8

const (
	State_Off State = iota
	State_On
)

// RCC clock control register
//
//regc:register uint32
type ClockControl struct {
	HSION     State `bits:"1, rw, get=HSIState, set=SetHSI"`
	HSIRDY    bool  `bits:"1, r, get=HSIReady"`
	_         uint8 `bits:"1"`
	HSITRIM   uint8 `bits:"5, rwc, get=HSITrimmingValue, set=SetHSITrimmingValue, clear=ClearHSITrimmingValue"`
	HSICAL    uint8 `bits:"8, r, get=HSICalibrationValue"`
	HSEON     State `bits:"1, rw, get=HSEState, set=SetHSE"`
	HSERDY    bool  `bits:"1, r, get=HSEReady"`
	HSEBYP    State `bits:"1, rw, get=HSEBypassState, set=SetHSEBypass"`
	CSSON     State `bits:"1, rw, get=CSSState, set=SetCSS"`
	_         uint8 `bits:"4"`
	PLLON     State `bits:"1, rw, get=PLLState, set=SetPLL"`
	PLLRDY    bool  `bits:"1, r, get=PLLReady"`
	PLLI2SON  State `bits:"1, rw, get=PLLI2SState, set=SetPLLI2S"`
	PLLI2SRDY bool  `bits:"1, r, get=PLLI2SReady"`
	PLLSAION  State `bits:"1, rw, get=PLLSAIState, set=SetPLLSAI"`
	PLLSAIRDY bool  `bits:"1, r, get=PLLSAIReady"`
	_         uint8 `bits:"2"`
}
