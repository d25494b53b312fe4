package jsonmatch

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertMatches parses actualJSON, matches it against m and fails t with the
// visualization of the comparison when it does not match.
func AssertMatches(t assert.TestingT, m Matcher, actualJSON string, msgAndArgs ...interface{}) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}

	result, err := MatchJSON(m, actualJSON)
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("Could not parse actual JSON: %v", err), msgAndArgs...)
	}
	if result.IsMatch() {
		return true
	}
	return assert.Fail(t, "JSON does not match the expectation:\n"+Visualize(result), msgAndArgs...)
}

// RequireMatches is AssertMatches followed by t.FailNow on failure.
func RequireMatches(t require.TestingT, m Matcher, actualJSON string, msgAndArgs ...interface{}) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if !AssertMatches(t, m, actualJSON, msgAndArgs...) {
		t.FailNow()
	}
}
