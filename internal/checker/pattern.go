package checker

import (
	"fmt"
	"sync"

	"github.com/dlclark/regexp2"
)

// patternCache memoizes compiled @pattern regular expressions across
// checks — schemas are checked repeatedly against many values, and
// regexp2.Compile is too costly to redo per call.
var patternCache sync.Map // map[string]*regexp2.Regexp

// compilePattern compiles pattern anchored at both ends, so a match always
// spans the whole value.
func compilePattern(pattern string) (*regexp2.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp2.Regexp), nil
	}
	re, err := regexp2.Compile(`\A(?:`+pattern+`)\z`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("checker: invalid pattern %q: %w", pattern, err)
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// matchesPattern reports whether value fully matches pattern, using
// regexp2 so author-supplied patterns can use lookaround the standard
// library's regexp cannot express.
func matchesPattern(pattern, value string) (bool, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return false, err
	}
	ok, err := re.MatchString(value)
	if err != nil {
		return false, fmt.Errorf("checker: pattern %q: %w", pattern, err)
	}
	return ok, nil
}
