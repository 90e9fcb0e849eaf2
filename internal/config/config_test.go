package config

import "testing"

func TestUserAgent(t *testing.T) {
	tests := []struct {
		name string
		cfg  MusicBrainzConfig
		want string
	}{
		{
			name: "with home url",
			cfg:  MusicBrainzConfig{HomeURL: "https://example.org/"},
			want: "scrobbble-addon/0.1.0 (+https://example.org/)",
		},
		{
			name: "without home url",
			cfg:  MusicBrainzConfig{},
			want: "scrobbble-addon/0.1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.UserAgent(); got != tt.want {
				t.Errorf("UserAgent() = %q, want %q", got, tt.want)
			}
		})
	}
}
