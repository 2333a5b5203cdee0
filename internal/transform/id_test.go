package transform

import "testing"

func TestExtractID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sameAs  string
		want    string
		wantErr bool
	}{
		{
			name:   "railway URI",
			sameAs: "odpt.Railway:JR-East.ChuoRapid",
			want:   "ChuoRapid",
		},
		{
			name:   "station URI keeps last segment only",
			sameAs: "odpt.Station:JR-East.ChuoRapid.Tokyo",
			want:   "Tokyo",
		},
		{
			name:   "bus stop pole URI with numeric tail",
			sameAs: "odpt.BusstopPole:Toei.Asakusa.1234",
			want:   "1234",
		},
		{
			name:    "no separator",
			sameAs:  "odpt:Railway",
			wantErr: true,
		},
		{
			name:    "empty string",
			sameAs:  "",
			wantErr: true,
		},
		{
			name:    "trailing dot",
			sameAs:  "odpt.Railway:JR-East.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExtractID(tt.sameAs)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractID(%q) error = nil, want non-nil", tt.sameAs)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractID(%q) error = %v", tt.sameAs, err)
			}
			if got != tt.want {
				t.Fatalf("ExtractID(%q) = %q, want %q", tt.sameAs, got, tt.want)
			}
		})
	}
}
