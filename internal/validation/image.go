package validation

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckProfileImage resolves the configured profile image against the image
// asset root and returns a warning message when the reference is broken, or
// "" when everything is fine. A broken image is a degraded-output condition,
// never a build error.
func CheckProfileImage(profileImage, imagesRoot string) string {
	if profileImage == "" {
		return "no profile image specified"
	}
	path := filepath.Join(imagesRoot, profileImage)
	if _, err := os.Stat(path); err != nil {
		return fmt.Sprintf("profile image %s not found, build will have a broken reference", path)
	}
	return ""
}
