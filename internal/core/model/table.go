package model

// Table is one named result handed to export sinks.
type Table struct {
	Name string
	Data any
}

// Tabular is implemented by tables that have a flat row form.
type Tabular interface {
	Header() []string
	Rows() [][]string
}
