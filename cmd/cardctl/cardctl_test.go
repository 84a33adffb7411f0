package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
  "applicationStatus": "New Card",
  "cardType": "Gold Prepaid",
  "surname": "Moyo",
  "firstName": "Tendai",
  "nationalIdNumber": "63-123456A12",
  "dateOfBirth": "1990-01-01",
  "gender": "Male",
  "physicalAddress": "12 Main St",
  "country": "Zimbabwe",
  "mobileNumber": "0772000000",
  "email": "tendai@example.com"
}`

func writePayload(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "validate", writePayload(t, validPayload))
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	out, _, err = run(t, "validate", writePayload(t, `{"applicationStatus":"Replacement Card","email":"bad"}`))
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "Card type is required")
	assert.Contains(t, out, "Old card number is required for replacement")
	assert.Contains(t, out, "Invalid email format")
}

func TestValidate_BadFile(t *testing.T) {
	_, _, err := run(t, "validate", writePayload(t, `{"surname":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse payload")

	_, _, err = run(t, "validate", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.pdf")
	_, stderr, err := run(t, "render", writePayload(t, validPayload), "-o", out, "--no-compress")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote "+out)

	pdf, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Contains(t, string(pdf), "Gold Prepaid")
	assert.Contains(t, string(pdf), "Moyo")
}

func TestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"id":"0b6f7c1e","warning":"Your application was saved, but we encountered an issue sending the confirmation email."}`))
	}))
	defer srv.Close()

	out, _, err := run(t, "submit", writePayload(t, validPayload), "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Application submitted successfully with a note: Your application was saved")
	assert.Contains(t, out, "Reference: 0b6f7c1e")
}

func TestSubmit_ValidationStopsBeforeNetwork(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hit = true }))
	defer srv.Close()

	_, stderr, err := run(t, "submit", writePayload(t, `{}`), "--server", srv.URL)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, stderr, "Surname is required")
	assert.False(t, hit)
}

func TestSubmit_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"connection refused"}`))
	}))
	defer srv.Close()

	_, _, err := run(t, "submit", writePayload(t, validPayload), "--server", srv.URL)
	require.Error(t, err)
	assert.Equal(t, "submit: connection refused", err.Error())
}
