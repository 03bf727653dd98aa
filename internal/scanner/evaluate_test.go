package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kittennbfive/fsmagic-scanner/internal/magic"
)

func TestEvaluateStringEqualSuccess(t *testing.T) {
	window := append([]byte("ABCD"), make([]byte, 4092)...)
	rule := magic.Rule{
		Offset:  0,
		Test:    magic.TestEqual,
		Message: "four letters",
		String:  &magic.StringSpec{Literal: []byte("ABCD")},
	}
	res, msg := evaluate(window, rule, 4096)
	assert.Equal(t, outcomeSuccess, res)
	assert.Equal(t, " four letters", msg)
}

func TestEvaluateStringNotEqualSuccessOnMismatch(t *testing.T) {
	window := []byte("WXYZ")
	rule := magic.Rule{
		Test:    magic.TestNotEqual,
		Message: "not abcd",
		String:  &magic.StringSpec{Literal: []byte("ABCD")},
	}
	res, _ := evaluate(window, rule, len(window))
	assert.Equal(t, outcomeSuccess, res)
}

func TestEvaluateRangeInvalidWhenOffsetOverruns(t *testing.T) {
	window := make([]byte, 10)
	rule := magic.Rule{
		Offset: 8,
		Test:   magic.TestEqual,
		Number: &magic.NumberSpec{DataType: magic.DataUint32, Endian: magic.EndianLittle},
	}
	res, msg := evaluate(window, rule, len(window))
	assert.Equal(t, outcomeInvalidRange, res)
	assert.Empty(t, msg)
}

func TestEvaluateTagInvalidStillRendersFragment(t *testing.T) {
	window := []byte{0x2A, 0, 0, 0}
	rule := magic.Rule{
		Test:       magic.TestEqual,
		TagInvalid: true,
		Message:    "unreliable match",
		Number: &magic.NumberSpec{
			DataType:  magic.DataUint32,
			Endian:    magic.EndianLittle,
			Comparand: 0x2A,
		},
	}
	res, msg := evaluate(window, rule, len(window))
	assert.Equal(t, outcomeInvalidTag, res)
	assert.Equal(t, " unreliable match", msg)
}

func TestEvaluateDateAlwaysSucceeds(t *testing.T) {
	window := []byte{0, 0, 0, 0}
	rule := magic.Rule{
		Test:        magic.TestEqual, // irrelevant for dates
		HasArgument: true,
		Message:     "mtime %s",
		Number: &magic.NumberSpec{
			DataType: magic.DataDateUnsigned,
			Endian:   magic.EndianLittle,
		},
	}
	res, msg := evaluate(window, rule, len(window))
	assert.Equal(t, outcomeSuccess, res)
	assert.Contains(t, msg, "1970")
}

func TestEvaluateSignedLessThan(t *testing.T) {
	window := []byte{0xFE, 0xFF, 0xFF, 0xFF} // -2
	rule := magic.Rule{
		Test: magic.TestLessThan,
		Number: &magic.NumberSpec{
			DataType:  magic.DataInt32,
			Endian:    magic.EndianLittle,
			Comparand: uint64(int64(-1)),
		},
	}
	res, _ := evaluate(window, rule, len(window))
	assert.Equal(t, outcomeSuccess, res)
}

func TestEvaluateUnsignedWithAndOperation(t *testing.T) {
	window := []byte{0xFF, 0x00, 0x00, 0x00}
	rule := magic.Rule{
		Test: magic.TestEqual,
		Number: &magic.NumberSpec{
			DataType:  magic.DataUint32,
			Endian:    magic.EndianLittle,
			Op:        magic.OpAnd,
			Operand:   0x0F,
			Comparand: 0x0F,
		},
	}
	res, _ := evaluate(window, rule, len(window))
	assert.Equal(t, outcomeSuccess, res)
}

func TestEvaluateNoSpaceSuppressesLeadingSpace(t *testing.T) {
	window := []byte("ABCD")
	rule := magic.Rule{
		Test:    magic.TestEqual,
		NoSpace: true,
		Message: "tight",
		String:  &magic.StringSpec{Literal: []byte("ABCD")},
	}
	_, msg := evaluate(window, rule, len(window))
	assert.Equal(t, "tight", msg)
}
