package inputsample

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRequester struct {
	requests  []string
	rejection []string
}

func (rr *recordingRequester) RequestValueFor(attribute string, values []string) error {
	rr.requests = append(rr.requests, fmt.Sprintf("%s %v", attribute, values))
	return nil
}

func (rr *recordingRequester) RejectValueFor(attribute, value string, values []string) error {
	rr.rejection = append(rr.rejection, fmt.Sprintf("%s=%s", attribute, value))
	return nil
}

func TestValueFor(t *testing.T) {
	rr := &recordingRequester{}
	s := New(strings.NewReader("2\n1\n0\n"), rr)

	v, err := s.ValueFor("flippers", []string{"1", "0"})
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	v, err = s.ValueFor("flippers", []string{"1", "0"})
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	v, err = s.ValueFor("no surfacing", []string{"1", "0"})
	require.NoError(t, err)
	assert.Equal(t, "0", v)

	assert.Equal(t, []string{"flippers [1 0]", "no surfacing [1 0]"}, rr.requests)
	assert.Equal(t, []string{"flippers=2"}, rr.rejection)
	assert.Equal(t, []string{"flippers=1", "no surfacing=0"}, s.Answers())
}

func TestValueForEOF(t *testing.T) {
	s := New(strings.NewReader("maybe\n"), &recordingRequester{})
	_, err := s.ValueFor("flippers", []string{"1", "0"})
	assert.ErrorIs(t, err, ErrNoValue)
}
