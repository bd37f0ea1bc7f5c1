package commands

import "testing"

func TestRepoArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantOwner string
		wantName  string
		wantOK    bool
	}{
		{
			name:      "two arguments",
			args:      []string{"/watch", "acme", "widgets"},
			wantOwner: "acme",
			wantName:  "widgets",
			wantOK:    true,
		},
		{
			name:      "slash form",
			args:      []string{"/watch", "acme/widgets"},
			wantOwner: "acme",
			wantName:  "widgets",
			wantOK:    true,
		},
		{
			name:   "no arguments",
			args:   []string{"/watch"},
			wantOK: false,
		},
		{
			name:   "missing repo name",
			args:   []string{"/watch", "acme/"},
			wantOK: false,
		},
		{
			name:   "missing owner",
			args:   []string{"/watch", "/widgets"},
			wantOK: false,
		},
		{
			name:   "extra slash",
			args:   []string{"/watch", "acme/widgets/extra"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, name, ok := repoArgs(tt.args)
			if ok != tt.wantOK {
				t.Fatalf("repoArgs() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (owner != tt.wantOwner || name != tt.wantName) {
				t.Errorf("repoArgs() = %q, %q, want %q, %q", owner, name, tt.wantOwner, tt.wantName)
			}
		})
	}
}
