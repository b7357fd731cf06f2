// This file is part of actcore.
//
// actcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// actcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with actcore.  If not, see <https://www.gnu.org/licenses/>.

// Package test collects small assertion helpers shared by this module's test
// suites, so that test failures read consistently across packages.
package test

import (
	"math"
	"reflect"
	"testing"
)

// Equate fails the test if got and want are not deeply equal.
func Equate(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected value: got %v (%T), want %v (%T)", got, got, want, want)
	}
}

// ExpectSuccess fails the test unless v is a true bool, a nil error, or a
// bare nil.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	if !isSuccess(v) {
		t.Errorf("expected success, got %v", v)
	}
}

// ExpectFailure fails the test unless v is a false bool or a non-nil error.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	if isSuccess(v) {
		t.Errorf("expected failure, got %v", v)
	}
}

func isSuccess(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return v
	case error:
		return v == nil
	default:
		return false
	}
}

// ExpectEquality fails the test if a and b are not deeply equal.
func ExpectEquality(t *testing.T, a, b interface{}) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected equality: %v (%T) != %v (%T)", a, a, b, b)
	}
}

// ExpectInequality fails the test if a and b are deeply equal.
func ExpectInequality(t *testing.T, a, b interface{}) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Errorf("expected inequality: %v (%T) == %v (%T)", a, a, b, b)
	}
}

// ExpectApproximate fails the test if a and b differ by more than tolerance.
func ExpectApproximate(t *testing.T, a, b, tolerance float64) {
	t.Helper()
	if math.Abs(a-b) > tolerance {
		t.Errorf("expected %v to be within %v of %v", a, tolerance, b)
	}
}
