package imageplane

import "testing"

func TestCameraInfoTopicMatches(t *testing.T) {
	tests := []struct {
		imageTopic string
		infoTopic  string
		want       bool
	}{
		{"a/b/image", "a/b/camera_info", true},
		{"a/image", "b/camera_info", false},
		{"a/b/image", "a/camera_info", false},
		{"a/image", "a/b/camera_info", false},
		{"image", "camera_info", true},
		{"/cam/image_rect", "/cam/camera_info", true},
		{"/cam/image_rect", "/other/camera_info", false},
	}

	for _, tt := range tests {
		if got := cameraInfoTopicMatches(tt.imageTopic, tt.infoTopic); got != tt.want {
			t.Errorf("match(%q, %q) = %v, want %v", tt.imageTopic, tt.infoTopic, got, tt.want)
		}
	}
}

func TestSelectCameraInfoTopic(t *testing.T) {
	known := map[string]struct{}{
		"a/b/info2": {},
		"a/b/info1": {},
		"x/y/info":  {},
	}

	selected, ok := selectCameraInfoTopic("a/b/image", known)
	if !ok {
		t.Fatal("expected a selection")
	}
	if selected != "a/b/info1" {
		t.Errorf("expected lexicographically smallest match a/b/info1, got %s", selected)
	}

	if _, ok := selectCameraInfoTopic("no/match/here/image", known); ok {
		t.Error("expected no selection for non-matching namespace")
	}

	if _, ok := selectCameraInfoTopic("a/b/image", map[string]struct{}{}); ok {
		t.Error("expected no selection from empty set")
	}
}
