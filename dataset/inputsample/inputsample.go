/*
Package inputsample provides samples whose values are read from an
io.Reader as they are needed, so that classifying one only asks for the
attributes on the path the tree takes.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"
)

// ErrNoValue is returned when the reader ends before an accepted value is read
const ErrNoValue = inputError("EOF when requesting value")

type inputError string

func (ie inputError) Error() string {
	return string(ie)
}

/*
ValueRequester represents a way to ask
for attribute values and reject the given values.
*/
type ValueRequester interface {
	RequestValueFor(attribute string, values []string) error
	RejectValueFor(attribute, value string, values []string) error
}

/*
Sample is a sample whose values are read from a reader. A value will be
requested using a ValueRequester before reading it.
*/
type Sample struct {
	obtainedValues map[string]string
	order          []string
	scanner        *bufio.Scanner
	requester      ValueRequester
}

/*
New takes an io.Reader and a ValueRequester and returns a Sample.

The returned Sample ValueFor method reads values first requesting them
with the given ValueRequester and then reading them from the reader.
Each value is expected on its own line. Lines with a value that is not
among the accepted ones are rejected with the ValueRequester's
RejectValueFor method and the next line is read.
*/
func New(r io.Reader, requester ValueRequester) *Sample {
	return &Sample{make(map[string]string), nil, bufio.NewScanner(r), requester}
}

/*
ValueFor takes the name of an attribute and the values accepted for it
and returns the value of the sample for the attribute, reading it if it
has not been obtained before.
*/
func (rs *Sample) ValueFor(attribute string, values []string) (string, error) {
	value, ok := rs.obtainedValues[attribute]
	if ok {
		return value, nil
	}
	err := rs.requester.RequestValueFor(attribute, values)
	if err != nil {
		return "", err
	}
	for rs.scanner.Scan() {
		line := rs.scanner.Text()
		for _, v := range values {
			if v == line {
				rs.obtainedValues[attribute] = v
				rs.order = append(rs.order, attribute)
				return v, nil
			}
		}
		err = rs.requester.RejectValueFor(attribute, line, values)
		if err != nil {
			return "", err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("reading %s: %w", attribute, ErrNoValue)
}

// Answers returns the attributes whose value has been read, in the order they were asked for
func (rs *Sample) Answers() []string {
	result := make([]string, 0, len(rs.order))
	for _, a := range rs.order {
		result = append(result, fmt.Sprintf("%s=%s", a, rs.obtainedValues[a]))
	}
	return result
}
