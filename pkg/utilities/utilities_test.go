/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package utilities

import (
	"flag"
	"sync"
	"testing"
)

func TestCommaValue(t *testing.T) {
	var values []string

	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.Var(CommaValue{&values}, "list", "")

	err := flags.Parse([]string{"--list", " a, b,,c ,"})
	if err != nil {
		t.Fatal(err)
	}

	if len(values) != 3 || values[0] != "a" || values[1] != "b" || values[2] != "c" {
		t.Errorf("unexpected values %q", values)
	}

	if s := (CommaValue{&values}).String(); s != "a,b,c" {
		t.Errorf("expected a,b,c, got %q", s)
	}

	if s := (CommaValue{}).String(); s != "" {
		t.Errorf("expected empty string, got %q", s)
	}
}

func TestConcurrentVariable(t *testing.T) {
	cvar := NewConcurrentVariable(0)

	var waitGroup sync.WaitGroup
	for i := 0; i < 100; i++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			cvar.Update(func(value int) int { return value + 1 })
		}()
	}
	waitGroup.Wait()

	if cvar.Get() != 100 {
		t.Errorf("expected 100, got %d", cvar.Get())
	}

	cvar.Set(-1)
	if cvar.Get() != -1 {
		t.Errorf("expected -1, got %d", cvar.Get())
	}
}
