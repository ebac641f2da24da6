package badminton

import (
	"errors"
	"testing"
)

func TestRules(t *testing.T) {
	_, err := NewRules(0, 30, true)
	if err != ErrPointsZero {
		t.Fatal("zero points did not error")
	}

	_, err = NewRules(21, 20, true)
	if err != ErrMaxPoints {
		t.Fatal("max points less than winning points did not error")
	}

	_, err = NewRules(21, 21, true)
	if err != nil {
		t.Fatal("max points equal to winning points did error")
	}

	rules, err := NewRules(21, 0, false)
	if err != nil || rules.MaxPoints != 21 {
		t.Fatal("max points not overridden when two point winning margin is false")
	}

	rules, err = NewRules(21, 30, true)
	if err != nil || rules != DefaultRules() {
		t.Fatal("standard badminton rules did error or differ from the default")
	}
}

func TestScoreErrors(t *testing.T) {
	rules := DefaultRules()

	invalid := []struct {
		a, b int
		err  error
	}{
		{-1, 21, ErrNegativePoints},
		{21, 21, ErrUndetermined},
		{0, 0, ErrUndetermined},
		{20, 17, ErrTooFewPoints},
		{31, 29, ErrTooManyPoints},
		{29, 28, ErrInvalidMargin},
		{30, 27, ErrInvalidMargin},
		{21, 20, ErrInvalidMargin},
		{23, 20, ErrInvalidMargin},
	}

	for _, s := range invalid {
		err := rules.Validate(s.a, s.b)
		if !errors.Is(err, s.err) {
			t.Fatalf("score %v-%v did not error with %v but with %v", s.a, s.b, s.err, err)
		}
	}
}

func TestValidScores(t *testing.T) {
	rules := DefaultRules()

	valid := [][2]int{
		{21, 19},
		{0, 21},
		{23, 21},
		{21, 23},
		{30, 29},
		{30, 28},
	}

	for _, s := range valid {
		if err := rules.Validate(s[0], s[1]); err != nil {
			t.Fatalf("score %v-%v did error: %v", s[0], s[1], err)
		}
	}

	a, b := rules.MaxScore()
	if rules.Validate(a, b) != nil {
		t.Fatal("the max score is not valid")
	}
}

func TestSinglePointMargin(t *testing.T) {
	rules, _ := NewRules(11, 0, false)

	if rules.Validate(11, 10) != nil {
		t.Fatal("one point margin was not accepted without the two point rule")
	}

	if rules.Validate(12, 10) != ErrTooManyPoints {
		t.Fatal("points above the winning points were accepted without the two point rule")
	}
}
