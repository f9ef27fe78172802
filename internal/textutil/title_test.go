package textutil

import "testing"

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/media/in/my.holiday.video.2019.mkv", "My Holiday Video 2019"},
		{"clip_final-cut.mp4", "Clip Final Cut"},
		{"CLIP.MOV", "Clip"},
		{"...", "Unknown Video"},
		{"", "Unknown Video"},
	}
	for _, tc := range cases {
		if got := DeriveTitle(tc.path); got != tc.want {
			t.Fatalf("DeriveTitle(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
