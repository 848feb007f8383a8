package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexBadNumber           Code = 1002
	LexUnterminatedComment Code = 1003

	// Syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynExpectType        Code = 2003
	SynExpectSemicolon   Code = 2004
	SynExpectIdentifier  Code = 2005
	SynUnclosedDelimiter Code = 2006
	SynBadArraySize      Code = 2007

	// Semantic
	SemaInfo                  Code = 3000
	SemaUnresolvedSymbol      Code = 3001
	SemaDuplicateSymbol       Code = 3002
	SemaTypeMismatch          Code = 3003
	SemaNoOverload            Code = 3004
	SemaWrongArgCount         Code = 3005
	SemaInvalidBinaryOperands Code = 3006
	SemaInvalidUnaryOperand   Code = 3007
	SemaInvalidIndex          Code = 3008
	SemaInvalidMember         Code = 3009
	SemaNotConstructible      Code = 3010
	SemaUnknownType           Code = 3011
	SemaDeclCycle             Code = 3012

	// Constant evaluation
	ConstInfo             Code = 4000
	ConstOverflow         Code = 4001
	ConstDivByZero        Code = 4002
	ConstDomain           Code = 4003
	ConstIndexOutOfBounds Code = 4004
	ConstClampBounds      Code = 4005
	ConstBitRange         Code = 4006
	ConstShift            Code = 4007
	ConstNormalizeZero    Code = 4008
	ConstConversion       Code = 4009
	ConstAssertFailed     Code = 4010

	// I/O
	IOLoadFileError Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:               "Unknown error",
	LexInfo:                   "Lexical information",
	LexUnknownChar:            "Unknown character",
	LexBadNumber:              "Malformed numeric literal",
	LexUnterminatedComment:    "Unterminated block comment",
	SynInfo:                   "Syntax information",
	SynUnexpectedToken:        "Unexpected token",
	SynExpectExpression:       "Expected expression",
	SynExpectType:             "Expected type",
	SynExpectSemicolon:        "Expected semicolon",
	SynExpectIdentifier:       "Expected identifier",
	SynUnclosedDelimiter:      "Unclosed delimiter",
	SynBadArraySize:           "Invalid array size",
	SemaInfo:                  "Semantic information",
	SemaUnresolvedSymbol:      "Unresolved symbol",
	SemaDuplicateSymbol:       "Duplicate symbol",
	SemaTypeMismatch:          "Type mismatch",
	SemaNoOverload:            "No matching overload",
	SemaWrongArgCount:         "Wrong number of arguments",
	SemaInvalidBinaryOperands: "Invalid binary operands",
	SemaInvalidUnaryOperand:   "Invalid unary operand",
	SemaInvalidIndex:          "Invalid index expression",
	SemaInvalidMember:         "Invalid member access",
	SemaNotConstructible:      "Type is not constructible",
	SemaUnknownType:           "Unknown type",
	SemaDeclCycle:             "Cyclic declaration",
	ConstInfo:                 "Constant evaluation information",
	ConstOverflow:             "Value not representable",
	ConstDivByZero:            "Division by zero",
	ConstDomain:               "Argument outside of the function domain",
	ConstIndexOutOfBounds:     "Index out of bounds",
	ConstClampBounds:          "Invalid clamp bounds",
	ConstBitRange:             "Bit range out of bounds",
	ConstShift:                "Invalid shift",
	ConstNormalizeZero:        "Zero length vector",
	ConstConversion:           "Conversion not representable",
	ConstAssertFailed:         "const_assert failed",
	IOLoadFileError:           "Failed to load file",
	ObsInfo:                   "Observability information",
	ObsTimings:                "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CST%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
