package types_test

import (
	"strings"
	"testing"

	"github.com/telvora/ucc/internal/types"
)

func TestResponseStatus_Class(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status      types.ResponseStatus
		class       types.ResponseStatusClass
		provisional bool
		success     bool
	}{
		{types.ResponseStatusTrying, types.ResponseStatusClassProvisional, true, false},
		{types.ResponseStatusRinging, types.ResponseStatusClassProvisional, true, false},
		{types.ResponseStatusOK, types.ResponseStatusClassSuccess, false, true},
		{types.ResponseStatusAccepted, types.ResponseStatusClassSuccess, false, true},
		{types.ResponseStatusUnauthorized, types.ResponseStatusClassClientError, false, false},
		{types.ResponseStatusServiceUnavailable, types.ResponseStatusClassServerError, false, false},
	}
	for _, c := range cases {
		if got := c.status.Class(); got != c.class {
			t.Fatalf("%d.Class() = %d, want %d", c.status, got, c.class)
		}
		if got := c.status.IsProvisional(); got != c.provisional {
			t.Fatalf("%d.IsProvisional() = %v, want %v", c.status, got, c.provisional)
		}
		if got := c.status.IsSuccess(); got != c.success {
			t.Fatalf("%d.IsSuccess() = %v, want %v", c.status, got, c.success)
		}
	}
}

func TestResponseStatus_ReasonPhrase(t *testing.T) {
	t.Parallel()

	if got := types.ResponseStatusRinging.ReasonPhrase(); got != "Ringing" {
		t.Fatalf("180.ReasonPhrase() = %q, want Ringing", got)
	}
	// Unknown codes fall back to the generic phrase of their class.
	if got := types.ResponseStatus(299).ReasonPhrase(); got != "OK" {
		t.Fatalf("299.ReasonPhrase() = %q, want OK", got)
	}
	if got := types.ResponseStatus(499).ReasonPhrase(); got != "Bad Request" {
		t.Fatalf("499.ReasonPhrase() = %q, want Bad Request", got)
	}
	if got := types.ResponseStatusOK.String(); got != "200 OK" {
		t.Fatalf("200.String() = %q, want 200 OK", got)
	}
}

func TestRequestMethod(t *testing.T) {
	t.Parallel()

	if got := types.RequestMethod("invite").ToUpper(); got != types.RequestMethodInvite {
		t.Fatalf("ToUpper() = %q, want INVITE", got)
	}
	if !types.RequestMethodCancel.Equal(types.RequestMethod("cancel")) {
		t.Fatalf("CANCEL.Equal(cancel) = false, want true")
	}
	if types.RequestMethod("").IsValid() {
		t.Fatalf("empty method IsValid() = true, want false")
	}
}

func TestValues_Render(t *testing.T) {
	t.Parallel()

	vals := types.Values{}.
		Set("transport", "ws").
		Set("branch", "z9hG4bK1").
		Append("lr", "")

	var sb strings.Builder
	vals.Render(&sb)
	// Keys render sorted, flags without "=".
	if got, want := sb.String(), ";branch=z9hG4bK1;lr;transport=ws"; got != want {
		t.Fatalf("vals.Render() = %q, want %q", got, want)
	}
}

func TestValues_ParseValues(t *testing.T) {
	t.Parallel()

	vals := types.ParseValues("Branch=z9hG4bK1; transport=ws ;lr")
	branch, ok := vals.First("branch")
	if !ok || branch != "z9hG4bK1" {
		t.Fatalf("vals.First(branch) = (%q, %v), want (z9hG4bK1, true)", branch, ok)
	}
	transport, _ := vals.First("transport")
	if transport != "ws" {
		t.Fatalf("vals.First(transport) = %q, want ws", transport)
	}
	if !vals.Has("lr") {
		t.Fatalf("vals.Has(lr) = false, want true")
	}
}
