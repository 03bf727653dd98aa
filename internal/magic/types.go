// Package magic models the signature database: a read-only catalogue of
// filesystem signature entries built once at program start and walked,
// unmodified, against every scratch window the scanner produces.
package magic

import "fmt"

// DataType is the kind of value a rule reads from the window.
type DataType int

const (
	DataString DataType = iota
	DataDateSigned
	DataDateUnsigned
	DataInt8
	DataUint8
	DataInt16
	DataUint16
	DataInt32
	DataUint32
	DataInt64
	DataUint64
)

func (t DataType) String() string {
	switch t {
	case DataString:
		return "string"
	case DataDateSigned:
		return "date"
	case DataDateUnsigned:
		return "udate"
	case DataInt8:
		return "int8"
	case DataUint8:
		return "uint8"
	case DataInt16:
		return "int16"
	case DataUint16:
		return "uint16"
	case DataInt32:
		return "int32"
	case DataUint32:
		return "uint32"
	case DataInt64:
		return "int64"
	case DataUint64:
		return "uint64"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// IsSigned reports whether the type reads a two's-complement value.
func (t DataType) IsSigned() bool {
	switch t {
	case DataDateSigned, DataInt8, DataInt16, DataInt32, DataInt64:
		return true
	default:
		return false
	}
}

// IsDate reports whether the type is one of the two date variants.
func (t DataType) IsDate() bool {
	return t == DataDateSigned || t == DataDateUnsigned
}

// Width returns the number of bytes the type occupies, or 0 for DataString
// (string rules carry their own length via StringSpec.Literal).
func (t DataType) Width() int {
	switch t {
	case DataString:
		return 0
	case DataDateSigned, DataDateUnsigned, DataInt32, DataUint32:
		return 4
	case DataInt8, DataUint8:
		return 1
	case DataInt16, DataUint16:
		return 2
	case DataInt64, DataUint64:
		return 8
	default:
		return 0
	}
}

// Endian selects the byte order used to combine multi-byte values.
// EndianUnspecified is only meaningful for single-byte reads and strings.
type Endian int

const (
	EndianUnspecified Endian = iota
	EndianLittle
	EndianBig
)

func (e Endian) String() string {
	switch e {
	case EndianLittle:
		return "little"
	case EndianBig:
		return "big"
	default:
		return "unspecified"
	}
}

// Operation is a pre-comparison arithmetic transform applied to an
// unsigned value before the test runs. Signed values never carry an
// operation (see Rule.Validate).
type Operation int

const (
	OpNone Operation = iota
	OpAnd
	OpMultiply
)

// TestType selects the comparison a rule performs once its value (or, for
// dates, its formatted string) is in hand.
type TestType int

const (
	TestAlwaysTrue TestType = iota
	TestEqual
	TestLessThan
	TestGreaterThan
	TestBitsSet
	TestNotEqual
)

func (t TestType) String() string {
	switch t {
	case TestAlwaysTrue:
		return "always-true"
	case TestEqual:
		return "equal"
	case TestLessThan:
		return "less-than"
	case TestGreaterThan:
		return "greater-than"
	case TestBitsSet:
		return "all-bits-set"
	case TestNotEqual:
		return "not-equal"
	default:
		return fmt.Sprintf("TestType(%d)", int(t))
	}
}

// StringSpec carries the fields meaningful only to string rules.
type StringSpec struct {
	Literal []byte
}

// NumberSpec carries the fields meaningful only to numeric (including
// date) rules. Comparand holds the raw 64-bit pattern; callers reinterpret
// it as signed or unsigned based on DataType.
type NumberSpec struct {
	DataType  DataType
	Endian    Endian
	Op        Operation
	Operand   uint64
	Comparand uint64
}

// ComparandSigned reinterprets Comparand as a signed 64-bit value.
func (n NumberSpec) ComparandSigned() int64 { return int64(n.Comparand) }

// Rule is one row of the magic database: a sum type over StringSpec and
// NumberSpec plus the fields every rule carries regardless of payload.
type Rule struct {
	Level       int
	Offset      int
	Test        TestType
	TagInvalid  bool
	NoSpace     bool
	HasArgument bool
	Message     string

	String *StringSpec // non-nil iff this is a string rule
	Number *NumberSpec // non-nil iff this is a numeric/date rule
}

// Width returns the byte span this rule reads from the window.
func (r Rule) Width() int {
	if r.String != nil {
		return len(r.String.Literal)
	}
	return r.Number.DataType.Width()
}

// Validate rejects rule combinations that indicate a build defect in the
// database, not a runtime condition: it runs once when the database
// loads, so the evaluator can assume every rule it sees already passed
// this check.
func (r Rule) Validate() error {
	switch {
	case r.String != nil && r.Number != nil:
		return fmt.Errorf("rule has both string and number payloads")
	case r.String == nil && r.Number == nil:
		return fmt.Errorf("rule has neither string nor number payload")
	}

	if r.String != nil {
		if r.Test != TestEqual && r.Test != TestNotEqual {
			return fmt.Errorf("string rule: test %s not permitted (only equal/not-equal)", r.Test)
		}
		if len(r.String.Literal) == 0 {
			return fmt.Errorf("string rule: empty literal")
		}
	}

	if n := r.Number; n != nil {
		if n.DataType.IsDate() {
			// dates always succeed and ignore Op and Test; any value set
			// here is simply unused, not an error.
		} else if n.DataType.IsSigned() && n.Op != OpNone {
			return fmt.Errorf("signed rule: operation_on_value must be none")
		}

		width := n.DataType.Width()
		if n.Endian == EndianUnspecified && width != 1 {
			return fmt.Errorf("unspecified endian only valid for width 1, got width %d", width)
		}
	}

	if r.HasArgument {
		if err := validateSinglePlaceholder(r.Message, r.messageVerb()); err != nil {
			return fmt.Errorf("message template: %w", err)
		}
	} else if len(extractVerbs(r.Message)) != 0 {
		return fmt.Errorf("message has a substitution but message_has_argument is false")
	}

	return nil
}

// messageVerb returns the Sprintf verb a rule's rendered message is
// allowed to use: strings and dates are substituted as text, everything
// else as a decimal integer.
func (r Rule) messageVerb() byte {
	if r.String != nil || r.Number.DataType.IsDate() {
		return 's'
	}
	return 'd'
}

// validateSinglePlaceholder parses a message template once at load time so
// a malformed verb count or a verb that doesn't match the rule's payload
// kind (e.g. a numeric rule templated with %s) never reaches runtime
// Sprintf and renders as a "%!d(string=...)"-style garbled line instead.
func validateSinglePlaceholder(msg string, want byte) error {
	verbs := extractVerbs(msg)
	if len(verbs) != 1 {
		return fmt.Errorf("expected exactly one substitution, found %d", len(verbs))
	}
	if verbs[0] != want {
		return fmt.Errorf("substitution is %%%c, rule's data type expects %%%c", verbs[0], want)
	}
	return nil
}

// extractVerbs returns the verb byte following each non-escaped '%' in
// msg, in order. A trailing '%' with nothing after it yields a 0 byte,
// which never matches a real verb and so always fails validation.
func extractVerbs(msg string) []byte {
	var verbs []byte
	for i := 0; i < len(msg); i++ {
		if msg[i] != '%' {
			continue
		}
		if i+1 < len(msg) && msg[i+1] == '%' {
			i++
			continue
		}
		if i+1 < len(msg) {
			verbs = append(verbs, msg[i+1])
			i++
		} else {
			verbs = append(verbs, 0)
		}
	}
	return verbs
}

// Entry is a named set of rules that evaluates independently against one
// window and yields at most one formatted match message per window.
type Entry struct {
	Name  string
	Rules []Rule
}
