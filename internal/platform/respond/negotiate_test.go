package respond

import "testing"

func TestSelectFormat(t *testing.T) {
	tests := []struct {
		name       string
		accept     string
		expectCBOR bool
	}{
		{"empty accept defaults to JSON", "", false},
		{"wildcard defaults to JSON", "*/*", false},
		{"application wildcard defaults to JSON", "application/*", false},
		{"explicit JSON", "application/json", false},
		{"explicit CBOR", "application/cbor", true},
		{"CBOR with quality parameter", "application/cbor;q=1.0", true},
		{"equal q-values default to JSON", "application/json, application/cbor", false},
		{"CBOR preferred with quality", "application/json;q=0.9, application/cbor;q=1.0", true},
		{"unsupported type defaults to JSON", "text/html", false},
		{"problem+cbor explicit", "application/problem+cbor", true},
		{"problem+json explicit", "application/problem+json", false},
		{"problem+cbor preferred", "application/problem+cbor;q=1.0, application/problem+json;q=0.5", true},
		{"problem+json preferred", "application/problem+cbor;q=0.5, application/problem+json;q=1.0", false},
		{"CBOR excluded with q=0", "application/cbor;q=0, application/json", false},
		{"JSON excluded with q=0", "application/json;q=0, application/cbor;q=1.0", true},
		{"both excluded", "application/json;q=0, application/cbor;q=0", false},
		{"only wildcard excluded", "*/*;q=0", false},
		{"low quality CBOR still accepted", "application/cbor;q=0.1", true},
		{"explicit CBOR beats wildcard", "*/*;q=0.1, application/cbor;q=1.0", true},
		{"explicit JSON beats wildcard", "*/*;q=0.1, application/json;q=1.0", false},
		{"q-value wins over specificity", "application/problem+cbor;q=0.1, application/json;q=1.0", false},
		{"specificity breaks ties for CBOR", "application/json;q=0.8, application/problem+cbor;q=0.8", true},
		{"specificity breaks ties for JSON", "application/cbor;q=0.8, application/problem+json;q=0.8", false},
		{"structured suffix wildcard CBOR", "application/*+cbor", true},
		{"structured suffix wildcard JSON", "application/*+json", false},
		{"malformed quality defaults to 1.0", "application/cbor;q=invalid", true},
		{"whitespace handling", "  application/cbor  ;  q=1.0  ", true},
		{"case insensitive", "Application/CBOR", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectFormat(tt.accept); got != tt.expectCBOR {
				t.Fatalf("selectFormat(%q) = %v, want %v", tt.accept, got, tt.expectCBOR)
			}
		})
	}
}

func TestParseAccept(t *testing.T) {
	ranges := parseAccept("text")
	if len(ranges) != 1 || ranges[0].typ != "text" || ranges[0].subtype != "*" {
		t.Fatalf("expected text/*, got %+v", ranges)
	}

	if ranges := parseAccept("application/json, , text/html"); len(ranges) != 2 {
		t.Fatalf("expected 2 ranges (empty part skipped), got %d", len(ranges))
	}

	for _, header := range []string{"application/json;q=invalid", "application/json;q=2.0", "application/json;q=-0.5"} {
		ranges := parseAccept(header)
		if len(ranges) != 1 || ranges[0].q != 1.0 {
			t.Fatalf("%s: expected q=1.0, got %+v", header, ranges)
		}
	}

	ranges = parseAccept("application/json;q=0.5;q=0.9")
	if len(ranges) != 1 || ranges[0].q != 0.9 {
		t.Fatalf("expected last q value (0.9) to be used, got %+v", ranges)
	}
}
