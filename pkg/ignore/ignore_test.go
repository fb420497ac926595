package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewMatcher(t *testing.T) {
	// Create a temporary directory for testing
	tempDir, err := os.MkdirTemp("", "mvnneat-ignore-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			t.Errorf("Failed to clean up temp dir: %v", err)
		}
	}()

	// Create a test .gitignore file
	gitignoreContent := `# Test gitignore
*.log
node_modules/
.temp/
!.temp/keep.txt
`
	gitignorePath := filepath.Join(tempDir, ".gitignore")
	if err := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0644); err != nil {
		t.Fatalf("Failed to write .gitignore: %v", err)
	}

	// Create a test .mvnneatignore file
	mvnneatignoreContent := `# Test mvnneatignore
*.backup
test-data/
`
	mvnneatignorePath := filepath.Join(tempDir, ".mvnneatignore")
	if err := os.WriteFile(mvnneatignorePath, []byte(mvnneatignoreContent), 0644); err != nil {
		t.Fatalf("Failed to write .mvnneatignore: %v", err)
	}

	// Change to temp directory for testing
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(originalDir); err != nil {
			t.Errorf("Failed to restore directory: %v", err)
		}
	}()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	// Create matcher
	matcher, err := NewMatcher(".")
	if err != nil {
		t.Fatalf("Failed to create matcher: %v", err)
	}

	// Test cases for file ignore
	fileTests := []struct {
		path     string
		expected bool
		name     string
	}{
		// Default ignores
		{".git/config", true, "git directory"},
		{"node_modules/package.json", true, "node_modules directory"},
		{"target/classes/App.class", true, "maven build output"},
		{"module-a/target/site/index.html", true, "nested maven build output"},

		// .gitignore patterns
		{"error.log", true, "*.log pattern"},
		{"debug.log", true, "*.log pattern nested"},
		{"logs/error.log", true, "*.log pattern in subdirectory"},
		{"node_modules/lib.js", true, "node_modules/ pattern"},
		{".temp/file.txt", true, ".temp/ pattern"},
		{".temp/keep.txt", false, "negation pattern !.temp/keep.txt"},

		// .mvnneatignore patterns
		{"data.backup", true, "*.backup pattern from mvnneatignore"},
		{"test-data/file.txt", true, "test-data/ pattern from mvnneatignore"},

		// Files that should not be ignored
		{"pom.xml", false, "root manifest"},
		{"module-a/pom.xml", false, "module manifest"},
		{"README.md", false, "markdown file"},
	}

	for _, tt := range fileTests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.IsIgnored(tt.path)
			if result != tt.expected {
				t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}

	// Test cases for directory ignore
	dirTests := []struct {
		path     string
		expected bool
		name     string
	}{
		// Default ignores
		{".git", true, "git directory"},
		{"node_modules", true, "node_modules directory"},
		{"target", true, "maven build output directory"},
		{"module-a/target", true, "nested maven build output directory"},

		// .gitignore patterns
		{".temp", true, ".temp directory"},

		// .mvnneatignore patterns
		{"test-data", true, "test-data directory from mvnneatignore"},

		// Directories that should not be ignored
		{"src", false, "source directory"},
		{"module-a", false, "module directory"},
	}

	for _, tt := range dirTests {
		t.Run(tt.name+"_dir", func(t *testing.T) {
			result := matcher.IsIgnoredDir(tt.path)
			if result != tt.expected {
				t.Errorf("IsIgnoredDir(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestReadIgnoreFile(t *testing.T) {
	// Create temporary file
	tempDir, err := os.MkdirTemp("", "mvnneat-ignore-read-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			t.Errorf("Failed to clean up temp dir: %v", err)
		}
	}()

	ignoreContent := `# Comment line
*.log

# Another comment
node_modules/
!important.log

# Empty lines should be ignored


test/
`
	ignoreFile := filepath.Join(tempDir, ".mvnneatignore")
	if err := os.WriteFile(ignoreFile, []byte(ignoreContent), 0644); err != nil {
		t.Fatalf("Failed to write ignore file: %v", err)
	}

	patterns, err := readIgnoreFile(ignoreFile)
	if err != nil {
		t.Fatalf("readIgnoreFile failed: %v", err)
	}

	expected := []string{
		"*.log",
		"node_modules/",
		"!important.log",
		"test/",
	}

	if len(patterns) != len(expected) {
		t.Errorf("Expected %d patterns, got %d", len(expected), len(patterns))
	}

	for i, pattern := range patterns {
		if pattern != expected[i] {
			t.Errorf("Pattern %d: expected %q, got %q", i, expected[i], pattern)
		}
	}
}

func TestReadIgnoreFileNotExists(t *testing.T) {
	_, err := readIgnoreFile("/nonexistent/.mvnneatignore")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestReadIgnoreFileDisallowedPath(t *testing.T) {
	_, err := readIgnoreFile("/etc/passwd")
	if err == nil {
		t.Error("Expected error for disallowed path, got nil")
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
		name     string
	}{
		{"", []string{}, "empty string"},
		{".", []string{}, "current directory"},
		{"pom.xml", []string{"pom.xml"}, "simple file"},
		{"dir/pom.xml", []string{"dir", "pom.xml"}, "nested file"},
		{"a/b/c/pom.xml", []string{"a", "b", "c", "pom.xml"}, "deeply nested file"},
		{"/absolute/path", []string{"absolute", "path"}, "absolute path"},
		{"./relative/path", []string{"relative", "path"}, "relative path with ./"},
		{"path//with/empty//segments", []string{"path", "with", "empty", "segments"}, "path with empty segments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitPath(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("splitPath(%q) returned %d parts, expected %d", tt.input, len(result), len(tt.expected))
				return
			}
			for i, part := range result {
				if part != tt.expected[i] {
					t.Errorf("splitPath(%q)[%d] = %q, expected %q", tt.input, i, part, tt.expected[i])
				}
			}
		})
	}
}

func TestMatcherWithNoIgnoreFiles(t *testing.T) {
	// Create a temporary directory with no ignore files
	tempDir, err := os.MkdirTemp("", "mvnneat-ignore-empty-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			t.Errorf("Failed to clean up temp dir: %v", err)
		}
	}()

	// Change to temp directory
	originalDir, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(originalDir); err != nil {
			t.Errorf("Failed to restore original directory: %v", err)
		}
	}()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	// Create matcher
	matcher, err := NewMatcher(".")
	if err != nil {
		t.Fatalf("Failed to create matcher: %v", err)
	}

	// Test that default patterns still work
	tests := []struct {
		path     string
		expected bool
		name     string
	}{
		{".git/config", true, "git directory should be ignored by default"},
		{"node_modules/lib.js", true, "node_modules should be ignored by default"},
		{"target/site/index.html", true, "maven build output should be ignored by default"},
		{"pom.xml", false, "manifest should not be ignored"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.IsIgnored(tt.path)
			if result != tt.expected {
				t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}
