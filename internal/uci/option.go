package uci

import (
	"errors"
	"fmt"
	"strconv"
)

// Option is one UCI `option` line plus the handler for its `setoption`.
type Option interface {
	UciName() string
	UciString() string
	Set(value string) error
}

// IntOption is a UCI "spin" option bound directly to an int field.
type IntOption struct {
	Name  string
	Min   int
	Max   int
	Value *int
}

func (o *IntOption) UciName() string { return o.Name }

func (o *IntOption) UciString() string {
	return fmt.Sprintf("option name %v type spin default %v min %v max %v", o.Name, *o.Value, o.Min, o.Max)
}

func (o *IntOption) Set(value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if v < o.Min || v > o.Max {
		return errors.New("uci: option value out of range")
	}
	*o.Value = v
	return nil
}

// BoolOption is a UCI "check" option bound directly to a bool field.
type BoolOption struct {
	Name  string
	Value *bool
}

func (o *BoolOption) UciName() string { return o.Name }

func (o *BoolOption) UciString() string {
	return fmt.Sprintf("option name %v type check default %v", o.Name, *o.Value)
}

func (o *BoolOption) Set(value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*o.Value = v
	return nil
}

// StringOption is a UCI "string" option, used for file paths (book/tablebase).
// Setter is called after Value is updated so the caller can react (e.g. load
// a book file) without the option type needing to know about books.
type StringOption struct {
	Name   string
	Value  *string
	Setter func(string) error
}

func (o *StringOption) UciName() string { return o.Name }

func (o *StringOption) UciString() string {
	return fmt.Sprintf("option name %v type string default %v", o.Name, *o.Value)
}

func (o *StringOption) Set(value string) error {
	*o.Value = value
	if o.Setter != nil {
		return o.Setter(value)
	}
	return nil
}
