package table

import (
	"strconv"
	"time"
)

// CellType represents the type of a cell value
type CellType uint8

const (
	TypeNull CellType = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
)

// Cell is a typed tabular value. The zero value is the null ("unknown") cell.
type Cell struct {
	Type  CellType  `json:"t"`
	Str   string    `json:"s,omitempty"`
	Int   int64     `json:"i,omitempty"`
	Float float64   `json:"f,omitempty"`
	Bool  bool      `json:"b,omitempty"`
	Time  time.Time `json:"d,omitzero"`
}

// Helper functions to create typed cells
func Null() Cell {
	return Cell{Type: TypeNull}
}

func StringCell(s string) Cell {
	return Cell{Type: TypeString, Str: s}
}

func IntCell(i int64) Cell {
	return Cell{Type: TypeInt, Int: i}
}

func FloatCell(f float64) Cell {
	return Cell{Type: TypeFloat, Float: f}
}

func BoolCell(b bool) Cell {
	return Cell{Type: TypeBool, Bool: b}
}

func TimeCell(t time.Time) Cell {
	return Cell{Type: TypeTime, Time: t}
}

// IsNull reports whether the cell holds no value
func (c Cell) IsNull() bool {
	return c.Type == TypeNull
}

// AsString returns the string form of the cell. Null cells render as the
// empty string; numeric and boolean cells render via strconv so that the
// integer 7 and the string "7" share one string form.
func (c Cell) AsString() string {
	switch c.Type {
	case TypeString:
		return c.Str
	case TypeInt:
		return strconv.FormatInt(c.Int, 10)
	case TypeFloat:
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case TypeBool:
		return strconv.FormatBool(c.Bool)
	case TypeTime:
		return c.Time.Format("2006-01-02")
	default:
		return ""
	}
}

// AsTime returns the cell's time value, if it holds one
func (c Cell) AsTime() (time.Time, bool) {
	if c.Type != TypeTime {
		return time.Time{}, false
	}
	return c.Time, true
}

// AsBool returns the cell's boolean value, if it holds one
func (c Cell) AsBool() (bool, bool) {
	if c.Type != TypeBool {
		return false, false
	}
	return c.Bool, true
}
