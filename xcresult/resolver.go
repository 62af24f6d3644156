package xcresult

import "github.com/bitrise-steplib/xcresult2junit/document"

// Resolver loads documents from an xcresult bundle.
type Resolver interface {
	// Root returns the bundle's ActionsInvocationRecord.
	Root(bundlePath string) (document.Node, error)
	// Object returns the document stored under the given object id.
	Object(bundlePath, id string) (document.Node, error)
}
