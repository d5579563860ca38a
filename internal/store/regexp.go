package store

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"sync"

	"modernc.org/sqlite"
)

// SQLite parses `x REGEXP y` but ships no implementation; register one backed
// by Go's regexp so filter patterns mean the same thing in SQL and in memory.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("regexp", 2, sqlRegexp)
}

const patternCacheSize = 256

var patterns = struct {
	sync.Mutex
	m map[string]*regexp.Regexp
}{m: make(map[string]*regexp.Regexp)}

func compiled(pattern string) (*regexp.Regexp, error) {
	patterns.Lock()
	defer patterns.Unlock()
	if re, ok := patterns.m[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if len(patterns.m) >= patternCacheSize {
		clear(patterns.m)
	}
	patterns.m[pattern] = re
	return re, nil
}

func sqlRegexp(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	pattern, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("regexp: pattern must be text, got %T", args[0])
	}
	var subject string
	switch v := args[1].(type) {
	case nil:
		return nil, nil
	case string:
		subject = v
	case []byte:
		subject = string(v)
	default:
		subject = fmt.Sprint(v)
	}
	re, err := compiled(pattern)
	if err != nil {
		return nil, err
	}
	if re.MatchString(subject) {
		return int64(1), nil
	}
	return int64(0), nil
}
