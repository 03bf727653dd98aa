package scanner

import (
	"bytes"
	"fmt"

	"github.com/kittennbfive/fsmagic-scanner/internal/magic"
)

// outcome is the three-way result of testing one rule against one window.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeInvalidRange // offset+width exceeds the window: unevaluable
	outcomeInvalidTag   // the rule matched but carries tag_invalid
)

func (o outcome) invalid() bool {
	return o == outcomeInvalidRange || o == outcomeInvalidTag
}

// evaluate tests one rule against one byte window, returning
// success/failure/invalid and, on success or tag-invalid, the rendered
// message fragment.
func evaluate(window []byte, rule magic.Rule, blocksize int) (outcome, string) {
	width := rule.Width()

	// A rule whose read would run past the end of the window can never
	// be evaluated; reject it outright rather than reading out of bounds.
	if rule.Offset+width > blocksize {
		return outcomeInvalidRange, ""
	}

	var (
		result    bool
		forceTrue bool
		valPrint  int64
		dateStr   string
		argString string
	)

	switch {
	case rule.String != nil:
		segment := window[rule.Offset : rule.Offset+width]
		cmp := bytes.Equal(segment, rule.String.Literal)
		switch rule.Test {
		case magic.TestEqual:
			result = cmp
		case magic.TestNotEqual:
			result = !cmp
		default:
			panic(fmt.Sprintf("scanner: string rule with test %s (database defect)", rule.Test))
		}
		argString = string(segment)

	case rule.Number.DataType.IsDate():
		// Dates unconditionally succeed; the test type is never consulted.
		dateStr = FormatDate(window, rule.Offset, rule.Number.Endian, rule.Number.DataType)
		forceTrue = true

	case rule.Number.DataType.IsSigned():
		v := ReadSigned(window, rule.Offset, width, rule.Number.Endian)
		switch rule.Test {
		case magic.TestAlwaysTrue:
			forceTrue = true
		case magic.TestEqual:
			result = v == rule.Number.ComparandSigned()
		case magic.TestLessThan:
			result = v < rule.Number.ComparandSigned()
		case magic.TestGreaterThan:
			result = v > rule.Number.ComparandSigned()
		case magic.TestBitsSet:
			result = v&rule.Number.ComparandSigned() == rule.Number.ComparandSigned()
		case magic.TestNotEqual:
			result = v != rule.Number.ComparandSigned()
		}
		valPrint = v

	default:
		v := ReadUnsigned(window, rule.Offset, width, rule.Number.Endian)
		switch rule.Number.Op {
		case magic.OpAnd:
			v &= rule.Number.Operand
		case magic.OpMultiply:
			v *= rule.Number.Operand
		}
		switch rule.Test {
		case magic.TestAlwaysTrue:
			forceTrue = true
		case magic.TestEqual:
			result = v == rule.Number.Comparand
		case magic.TestLessThan:
			result = v < rule.Number.Comparand
		case magic.TestGreaterThan:
			result = v > rule.Number.Comparand
		case magic.TestBitsSet:
			result = v&rule.Number.Comparand == rule.Number.Comparand
		case magic.TestNotEqual:
			result = v != rule.Number.Comparand
		}
		valPrint = int64(v)
	}

	if !forceTrue && !result {
		return outcomeFailure, ""
	}

	fragment := renderFragment(rule, valPrint, dateStr, argString)
	if rule.TagInvalid {
		return outcomeInvalidTag, fragment
	}
	return outcomeSuccess, fragment
}

// renderFragment formats one rule's contribution to an entry's combined
// match message.
func renderFragment(rule magic.Rule, valPrint int64, dateStr, argString string) string {
	var prefix string
	if !rule.NoSpace {
		prefix = " "
	}

	if !rule.HasArgument {
		return prefix + rule.Message
	}

	switch {
	case rule.String != nil:
		return prefix + fmt.Sprintf(rule.Message, argString)
	case rule.Number.DataType.IsDate():
		return prefix + fmt.Sprintf(rule.Message, dateStr)
	default:
		return prefix + fmt.Sprintf(rule.Message, valPrint)
	}
}
