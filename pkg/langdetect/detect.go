// Package langdetect classifies candidate files as Ruby source when their
// name carries no recognized Ruby extension, using shebang and content
// sniffing. It backs extensionless-script discovery (e.g. a bin/console
// with a "#!/usr/bin/env ruby" shebang and no ".rb" suffix).
package langdetect

import (
	"bytes"

	"github.com/go-enry/go-enry/v2"
)

// rubyExtensionlessNames are well-known Ruby files with no extension that
// RuboCop treats as lintable regardless of shebang.
var rubyExtensionlessNames = map[string]bool{
	"Gemfile":    true,
	"Rakefile":   true,
	"Guardfile":  true,
	"Capfile":    true,
	"Podfile":    true,
	"Vagrantfile": true,
	"Berksfile":  true,
	"Thorfile":   true,
}

// IsKnownRubyFilename reports whether name is a well-known extensionless
// Ruby file by convention (Gemfile, Rakefile, and similar).
func IsKnownRubyFilename(name string) bool {
	return rubyExtensionlessNames[name]
}

// IsRubyShebang reports whether content begins with a shebang line that
// invokes a Ruby interpreter, e.g. "#!/usr/bin/env ruby" or
// "#!/usr/bin/ruby -w".
func IsRubyShebang(content []byte) bool {
	if !bytes.HasPrefix(content, []byte("#!")) {
		return false
	}
	lang, safe := enry.GetLanguageByShebang(content)
	return safe && lang == "Ruby"
}

// LooksLikeRuby applies a best-effort content classifier for files that
// have neither a recognized extension nor a Ruby shebang. It is
// deliberately conservative: a positive result requires the classifier to
// report high confidence, restricted to Ruby among a small candidate set
// of languages it is commonly confused with.
func LooksLikeRuby(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	candidates := []string{"Ruby", "Perl", "Shell", "Python", "Crystal"}
	lang, safe := enry.GetLanguageByClassifier(content, candidates)
	return safe && lang == "Ruby"
}
