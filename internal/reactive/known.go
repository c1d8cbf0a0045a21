package reactive

import (
	"regexp"
	"slices"
)

const (
	// StoreUnwrapFunc destructures a store into reactive references.
	StoreUnwrapFunc = "storeToRefs"

	// WatchFunc takes reactive sources as its first argument.
	WatchFunc = "watch"

	// SuffixName is the access suffix of reactive wrappers.
	SuffixName = "value"
)

// reactiveFuncs construct reactive values.
var reactiveFuncs = []string{
	"ref",
	"computed",
	"reactive",
	"toRef",
	"toRefs",
	"shallowRef",
	StoreUnwrapFunc,
}

// ReactiveFuncs returns names of functions constructing reactive values.
func ReactiveFuncs() []string {
	return slices.Clone(reactiveFuncs)
}

// IsReactiveFunc checks if name is one of reactive value constructors.
func IsReactiveFunc(name string) bool {
	return slices.Contains(reactiveFuncs, name)
}

var composableNamePattern = regexp.MustCompile(`^use[A-Z]`)

// IsComposableName checks if name follows composable naming convention: useCounter
// does, user, Use and use do not.
func IsComposableName(name string) bool {
	return composableNamePattern.MatchString(name)
}
