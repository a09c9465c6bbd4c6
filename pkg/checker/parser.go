package checker

import (
	"context"

	"github.com/fastlint/fastlint/pkg/rbast"
)

// Parser parses Ruby source into a FileSnapshot.
//
// The checker package defines this interface to follow the principle of
// defining interfaces in the consumer package. Implementations (e.g.
// rbparser/structural, rbparser/treesitter) provide the concrete parsing
// logic; the checker depends only on this interface.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines, if documented as such,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw Ruby source bytes into a fully-populated FileSnapshot.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout propagation.
	//   - path: logical file path (for diagnostics; must not be used for I/O).
	//   - content: raw source bytes (must not be mutated by the implementation).
	//
	// Returns:
	//   - On success: a fully-populated FileSnapshot with valid tokens and AST.
	//   - On error: nil and a descriptive error; no partial snapshot is returned.
	//
	// The returned FileSnapshot must satisfy:
	//   - snapshot.Path == path
	//   - bytes.Equal(snapshot.Content, content)
	//   - rbast.ValidateTokens(snapshot.Tokens, len(snapshot.Content)) == true
	//   - snapshot.Root != nil && snapshot.Root.Kind == rbast.NodeProgram
	//   - All nodes have node.File == snapshot
	Parse(ctx context.Context, path string, content []byte) (*rbast.FileSnapshot, error)
}
