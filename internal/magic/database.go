package magic

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/signatures.yaml
var defaultSignatures embed.FS

// Database is the read-only, in-memory signature catalogue the Signature
// Engine walks for every window. It is built once at program start and
// never mutated afterwards.
type Database struct {
	Entries []Entry
}

// rawFile mirrors the embedded YAML fixture's shape one level below
// Database/Entry/Rule: strings for every enum field, decoded and
// validated by Load into the typed Rule values the scanner consumes.
// Nothing in this package hand-writes Rule literals; they all come from
// decoding this shape.
type rawFile struct {
	Entries []rawEntry `yaml:"entries"`
}

type rawEntry struct {
	Name  string    `yaml:"name"`
	Rules []rawRule `yaml:"rules"`
}

type rawRule struct {
	Level       int    `yaml:"level"`
	Offset      int    `yaml:"offset"`
	Type        string `yaml:"type"`
	Endian      string `yaml:"endian"`
	Op          string `yaml:"op"`
	Operand     uint64 `yaml:"operand"`
	Test        string `yaml:"test"`
	Value       string `yaml:"value"`        // string literal payload
	ValueHex    uint64 `yaml:"value_hex"`     // numeric comparand, hex/decimal
	ValueSigned int64  `yaml:"value_signed"` // numeric comparand for signed types
	TagInvalid  bool   `yaml:"tag_invalid"`
	NoSpace     bool   `yaml:"no_space"`
	HasArgument bool   `yaml:"has_argument"`
	Message     string `yaml:"message"`
}

// LoadDefault decodes the embedded reference signature fixture. A real
// deployment would point Load at a generated artefact built from the
// maintainers' own filesystem catalogue; this repository ships a small,
// real-signature fixture under testdata/ for demonstration and testing.
func LoadDefault() (*Database, error) {
	data, err := defaultSignatures.ReadFile("testdata/signatures.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded signature fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a signature database from its YAML
// representation. Any malformed rule fails the whole load; the database
// is a compile-time constant, so a defect here is fatal to the program,
// not a condition the scanner can work around.
func Parse(data []byte) (*Database, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode signature database: %w", err)
	}

	db := &Database{Entries: make([]Entry, 0, len(raw.Entries))}
	for _, re := range raw.Entries {
		entry := Entry{Name: re.Name, Rules: make([]Rule, 0, len(re.Rules))}
		for i, rr := range re.Rules {
			rule, err := convertRule(rr)
			if err != nil {
				return nil, fmt.Errorf("entry %q rule %d: %w", re.Name, i, err)
			}
			if err := rule.Validate(); err != nil {
				return nil, fmt.Errorf("entry %q rule %d: %w", re.Name, i, err)
			}
			entry.Rules = append(entry.Rules, rule)
		}
		db.Entries = append(db.Entries, entry)
	}
	return db, nil
}

func convertRule(rr rawRule) (Rule, error) {
	test, err := parseTestType(rr.Test)
	if err != nil {
		return Rule{}, err
	}

	rule := Rule{
		Level:       rr.Level,
		Offset:      rr.Offset,
		Test:        test,
		TagInvalid:  rr.TagInvalid,
		NoSpace:     rr.NoSpace,
		HasArgument: rr.HasArgument,
		Message:     rr.Message,
	}

	dt, isString, err := parseDataType(rr.Type)
	if err != nil {
		return Rule{}, err
	}

	if isString {
		rule.String = &StringSpec{Literal: []byte(rr.Value)}
		return rule, nil
	}

	endian, err := parseEndian(rr.Endian)
	if err != nil {
		return Rule{}, err
	}
	op, err := parseOperation(rr.Op)
	if err != nil {
		return Rule{}, err
	}

	comparand := rr.ValueHex
	if dt.IsSigned() {
		comparand = uint64(rr.ValueSigned)
	}

	rule.Number = &NumberSpec{
		DataType:  dt,
		Endian:    endian,
		Op:        op,
		Operand:   rr.Operand,
		Comparand: comparand,
	}
	return rule, nil
}

func parseDataType(s string) (DataType, bool, error) {
	switch s {
	case "string":
		return DataString, true, nil
	case "date":
		return DataDateSigned, false, nil
	case "udate":
		return DataDateUnsigned, false, nil
	case "int8":
		return DataInt8, false, nil
	case "uint8":
		return DataUint8, false, nil
	case "int16":
		return DataInt16, false, nil
	case "uint16":
		return DataUint16, false, nil
	case "int32":
		return DataInt32, false, nil
	case "uint32":
		return DataUint32, false, nil
	case "int64":
		return DataInt64, false, nil
	case "uint64":
		return DataUint64, false, nil
	default:
		return 0, false, fmt.Errorf("unknown data type %q", s)
	}
}

func parseEndian(s string) (Endian, error) {
	switch s {
	case "", "unspecified":
		return EndianUnspecified, nil
	case "little":
		return EndianLittle, nil
	case "big":
		return EndianBig, nil
	default:
		return 0, fmt.Errorf("unknown endian %q", s)
	}
}

func parseOperation(s string) (Operation, error) {
	switch s {
	case "", "none":
		return OpNone, nil
	case "and":
		return OpAnd, nil
	case "multiply":
		return OpMultiply, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", s)
	}
}

func parseTestType(s string) (TestType, error) {
	switch s {
	case "always-true":
		return TestAlwaysTrue, nil
	case "equal":
		return TestEqual, nil
	case "less-than":
		return TestLessThan, nil
	case "greater-than":
		return TestGreaterThan, nil
	case "all-bits-set":
		return TestBitsSet, nil
	case "not-equal":
		return TestNotEqual, nil
	default:
		return 0, fmt.Errorf("unknown test type %q", s)
	}
}
