package imageplane

import "strings"

// cameraInfoTopicMatches reports whether a calibration topic belongs to an
// image topic: both live in the same namespace and differ only in the final
// path segment.
func cameraInfoTopicMatches(imageTopic, infoTopic string) bool {
	imageParts := strings.Split(imageTopic, "/")
	infoParts := strings.Split(infoTopic, "/")
	if len(imageParts) != len(infoParts) {
		return false
	}
	for i := 0; i < len(imageParts)-1; i++ {
		if imageParts[i] != infoParts[i] {
			return false
		}
	}
	return true
}

// selectCameraInfoTopic picks the lexicographically smallest known
// calibration topic matching imageTopic. Returns false when none match.
func selectCameraInfoTopic(imageTopic string, known map[string]struct{}) (string, bool) {
	best := ""
	for infoTopic := range known {
		if !cameraInfoTopicMatches(imageTopic, infoTopic) {
			continue
		}
		if best == "" || infoTopic < best {
			best = infoTopic
		}
	}
	return best, best != ""
}
