package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
//
// Registry-specific validation should be done separately by the callers.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// condaPackageNameRegex matches valid conda package names.
// Conda allows lowercase alphanumerics, hyphens, underscores and dots.
var condaPackageNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateCondaPackageName validates a conda package name.
func ValidateCondaPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	if !condaPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid conda package name: %q", name)
	}

	return nil
}

// envFileExtensions lists the recognized environment descriptor extensions.
var envFileExtensions = []string{".yml", ".yaml", ".json"}

// ValidateEnvFilePath validates an environment descriptor path.
// The extension must be one of .yml, .yaml, or .json.
func ValidateEnvFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidEnvFile, "environment file path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	lower := strings.ToLower(path)
	for _, ext := range envFileExtensions {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return New(ErrCodeInvalidEnvFile, "unsupported environment file extension (expected .yml, .yaml, or .json): %s", path)
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
