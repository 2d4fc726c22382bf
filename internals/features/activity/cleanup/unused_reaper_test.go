package cleanup

import (
	"context"
	"errors"
	"testing"
)

type fakeTarget struct {
	name string
	n    int64
	err  error
	hits int
}

func (f *fakeTarget) Name() string { return f.name }

func (f *fakeTarget) DeleteUnused(context.Context) (int64, error) {
	f.hits++
	return f.n, f.err
}

func TestRunOnceContinuesPastFailures(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeTarget{name: "modules", n: 2}
	b := &fakeTarget{name: "locations", err: boom}
	c := &fakeTarget{name: "event_types", n: 0}

	removed, err := RunOnce(context.Background(), a, b, c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the failure to be reported, got %v", err)
	}
	if c.hits != 1 {
		t.Fatalf("targets after a failure must still run")
	}
	if removed["modules"] != 2 {
		t.Fatalf("unexpected counts %v", removed)
	}
	if _, ok := removed["locations"]; ok {
		t.Fatalf("failed target should not report a count")
	}
}

func TestStartWithoutScheduleIsDisabled(t *testing.T) {
	c, err := Start("")
	if err != nil || c != nil {
		t.Fatalf("expected disabled scheduler, got %v %v", c, err)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	if _, err := Start("not a cron line", &fakeTarget{name: "modules"}); err == nil {
		t.Fatalf("expected an error for an invalid schedule")
	}
}

func TestStartSchedulesJob(t *testing.T) {
	c, err := Start("@every 1h", &fakeTarget{name: "modules"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer c.Stop()
	if len(c.Entries()) != 1 {
		t.Fatalf("expected one scheduled entry, got %d", len(c.Entries()))
	}
}
