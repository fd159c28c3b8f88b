package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/igolaizola/motivai/pkg/videogen"
)

type fakeProvider struct {
	name      string
	available bool
	probes    int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(ctx context.Context, req *videogen.Request) (*videogen.Job, error) {
	return &videogen.Job{ID: "job-1", Provider: f.name, Status: videogen.StatusProcessing}, nil
}

func (f *fakeProvider) Status(ctx context.Context, id string) (*videogen.Job, error) {
	return &videogen.Job{ID: id, Provider: f.name, Status: videogen.StatusProcessing}, nil
}

func (f *fakeProvider) Available(ctx context.Context) bool {
	f.probes++
	return f.available
}

func newTestRegistry(did, heygen, sora *fakeProvider) *Registry {
	r := New(&Config{})
	r.Register("did", did)
	r.Register("heygen", heygen)
	r.Register("sora", sora)
	return r
}

func TestPrimaryPreferred(t *testing.T) {
	did := &fakeProvider{name: "did", available: true}
	heygen := &fakeProvider{name: "heygen", available: true}
	sora := &fakeProvider{name: "sora"}
	r := newTestRegistry(did, heygen, sora)

	p, err := r.Primary(context.Background())
	if err != nil {
		t.Fatalf("Primary() err = %v; want nil", err)
	}
	if p.Name() != "did" {
		t.Fatalf("Primary() = %q; want %q", p.Name(), "did")
	}
	if heygen.probes != 0 {
		t.Fatalf("fallback probed %d times; want 0", heygen.probes)
	}
}

func TestPrimaryFallsBack(t *testing.T) {
	did := &fakeProvider{name: "did"}
	heygen := &fakeProvider{name: "heygen", available: true}
	sora := &fakeProvider{name: "sora"}
	r := newTestRegistry(did, heygen, sora)

	p, err := r.Primary(context.Background())
	if err != nil {
		t.Fatalf("Primary() err = %v; want nil", err)
	}
	if p.Name() != "heygen" {
		t.Fatalf("Primary() = %q; want %q", p.Name(), "heygen")
	}
}

func TestPrimaryExhausted(t *testing.T) {
	did := &fakeProvider{name: "did"}
	heygen := &fakeProvider{name: "heygen"}
	sora := &fakeProvider{name: "sora"}
	r := newTestRegistry(did, heygen, sora)

	_, err := r.Primary(context.Background())
	if !errors.Is(err, videogen.ErrNoProvider) {
		t.Fatalf("Primary() err = %v; want %v", err, videogen.ErrNoProvider)
	}
	if sora.probes != 1 {
		t.Fatalf("sora probed %d times; want 1", sora.probes)
	}
}

func TestPrimaryResolutionErrorRoutesToAnyAvailable(t *testing.T) {
	// No key configured for the primary: resolution fails, but selection
	// must continue through the chain instead of propagating the error.
	r := New(&Config{})
	heygen := &fakeProvider{name: "heygen", available: true}
	r.Register("heygen", heygen)

	p, err := r.Primary(context.Background())
	if err != nil {
		t.Fatalf("Primary() err = %v; want nil", err)
	}
	if p.Name() != "heygen" {
		t.Fatalf("Primary() = %q; want %q", p.Name(), "heygen")
	}
}

func TestGetNotConfigured(t *testing.T) {
	r := New(&Config{})
	if _, err := r.Get("did"); !errors.Is(err, videogen.ErrNotConfigured) {
		t.Fatalf("Get(did) err = %v; want %v", err, videogen.ErrNotConfigured)
	}
}

func TestGetCaches(t *testing.T) {
	r := New(&Config{
		Providers: map[string]videogen.Config{
			"did": {Key: "key"},
		},
	})
	first, err := r.Get("did")
	if err != nil {
		t.Fatalf("Get(did) err = %v; want nil", err)
	}
	second, err := r.Get("did")
	if err != nil {
		t.Fatalf("Get(did) err = %v; want nil", err)
	}
	if first != second {
		t.Fatal("Get(did) returned different instances; want cached")
	}
}

func TestGetUnknown(t *testing.T) {
	r := New(&Config{
		Providers: map[string]videogen.Config{
			"acme": {Key: "key"},
		},
	})
	if _, err := r.Get("acme"); err == nil {
		t.Fatal("Get(acme) err = nil; want error")
	}
}
