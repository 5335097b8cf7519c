package cache

import "testing"

func TestKeyDeterministic(t *testing.T) {
	a := Key("breachedaccount/test@example.com", Params{
		"truncateResponse":  true,
		"IncludeUnverified": false,
	})
	b := Key("breachedaccount/test@example.com", Params{
		"IncludeUnverified": false,
		"truncateResponse":  true,
	})
	if a != b {
		t.Errorf("insertion order changed key: %s != %s", a, b)
	}
}

func TestKeyDiscriminates(t *testing.T) {
	base := Key("breaches", Params{"domain": "adobe.com", "truncateResponse": true})

	tests := []struct {
		name     string
		endpoint string
		params   Params
	}{
		{"different endpoint", "breachedaccount/x", Params{"domain": "adobe.com", "truncateResponse": true}},
		{"different value", "breaches", Params{"domain": "linkedin.com", "truncateResponse": true}},
		{"flipped bool", "breaches", Params{"domain": "adobe.com", "truncateResponse": false}},
		{"extra param", "breaches", Params{"domain": "adobe.com", "truncateResponse": true, "page": 2}},
		{"dropped param", "breaches", Params{"domain": "adobe.com"}},
	}

	for _, tt := range tests {
		if got := Key(tt.endpoint, tt.params); got == base {
			t.Errorf("%s: key collided with base", tt.name)
		}
	}
}

func TestKeyOmissionEquivalence(t *testing.T) {
	withNil := Key("breachedaccount/test@example.com", Params{
		"truncateResponse":  true,
		"IncludeUnverified": false,
		"domain":            nil,
	})
	without := Key("breachedaccount/test@example.com", Params{
		"truncateResponse":  true,
		"IncludeUnverified": false,
	})
	if withNil != without {
		t.Errorf("nil parameter changed key: %s != %s", withNil, without)
	}

	if Key("breaches", nil) != Key("breaches", Params{}) {
		t.Error("nil and empty param maps derived different keys")
	}
}

func TestKeyFieldBoundaries(t *testing.T) {
	// Fields are NUL-framed, so bytes may not migrate across the
	// endpoint/name/value boundaries and produce the same digest.
	tests := []struct {
		name      string
		endpointA string
		paramsA   Params
		endpointB string
		paramsB   Params
	}{
		{
			"endpoint bleeding into a name",
			"ea", Params{"b": "x"},
			"e", Params{"ab": "x"},
		},
		{
			"value swallowing the next pair",
			"e", Params{"a": "x", "c": "y"},
			"e", Params{"a": "xc=y"},
		},
		{
			"name bleeding into a value",
			"e", Params{"ab": "c"},
			"e", Params{"a": "bc"},
		},
	}

	for _, tt := range tests {
		a := Key(tt.endpointA, tt.paramsA)
		b := Key(tt.endpointB, tt.paramsB)
		if a == b {
			t.Errorf("%s: keys collided (%s)", tt.name, a)
		}
	}
}

func TestKeyIsHexDigest(t *testing.T) {
	key := Key("dataclasses", nil)
	if len(key) != 64 {
		t.Fatalf("expected 64 hex chars, got %d (%s)", len(key), key)
	}
	for _, r := range key {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("unexpected character %q in key %s", r, key)
		}
	}
}
