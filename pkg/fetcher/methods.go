package fetcher

import (
	"strings"
	"sync"

	"github.com/sajari/fuzzy"
)

// supportedMethods lists the HTTP methods the fetch tools accept
var supportedMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

var (
	methodModel     *fuzzy.Model
	methodModelOnce sync.Once
)

// getMethodModel returns a fuzzy model trained on the supported methods,
// used to suggest a correction for misspelled method names
func getMethodModel() *fuzzy.Model {
	methodModelOnce.Do(func() {
		model := fuzzy.NewModel()
		model.SetDepth(2)
		model.SetThreshold(1)
		model.SetUseAutocomplete(true)

		for _, method := range supportedMethods {
			model.TrainWord(strings.ToLower(method))
		}

		methodModel = model
	})

	return methodModel
}

// isSupportedMethod reports whether the upper-cased method is accepted
func isSupportedMethod(method string) bool {
	for _, m := range supportedMethods {
		if m == method {
			return true
		}
	}
	return false
}

// suggestMethod returns the closest supported method for a misspelled one,
// or an empty string when nothing is close enough
func suggestMethod(method string) string {
	suggestions := getMethodModel().SpellCheckSuggestions(strings.ToLower(method), 1)
	if len(suggestions) == 0 {
		return ""
	}
	return strings.ToUpper(suggestions[0])
}
