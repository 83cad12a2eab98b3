package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common component names
func Component(name string) Field {
	return String("component", name)
}

// Source tags a log line with the source-table kind being processed
func Source(kind string) Field {
	return String("source", kind)
}

// TableName tags a log line with a canonical table name
func TableName(name string) Field {
	return String("table", name)
}

// RowCount reports how many rows a step produced or consumed
func RowCount(n int) Field {
	return Int("rows", n)
}

// ColumnName tags a log line with the column a diagnostic refers to
func ColumnName(name string) Field {
	return String("column", name)
}

// NodeID tags a log line with a composite graph node id
func NodeID(id string) Field {
	return String("node_id", id)
}

// RunID tags a log line with the pipeline run identifier
func RunID(id string) Field {
	return String("run_id", id)
}

// Operation tags a log line with the operation name
func Operation(op string) Field {
	return String("operation", op)
}

// Latency reports an operation duration
func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
