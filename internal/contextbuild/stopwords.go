package contextbuild

// stopWords is the fixed English stop-word list used to filter task-string
// tokens during keyword extraction, per spec.md §4.7. It mixes ordinary
// function words with imperatives common in task descriptions ("fix",
// "add", "find") that carry no identifying signal about which symbols are
// relevant.
var stopWords = buildStopWordSet(
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren't", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can",
	"cannot", "could", "did", "do", "does", "doing", "down", "during",
	"each", "few", "for", "from", "further", "had", "has", "have", "having",
	"he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "itself", "just", "me",
	"more", "most", "my", "myself", "no", "nor", "not", "now", "of", "off",
	"on", "once", "only", "or", "other", "our", "ours", "ourselves", "out",
	"over", "own", "same", "she", "should", "so", "some", "such", "than",
	"that", "the", "their", "theirs", "them", "themselves", "then", "there",
	"these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "very", "was", "we", "were", "what", "when", "where",
	"which", "while", "who", "whom", "why", "will", "with", "would", "you",
	"your", "yours", "yourself", "yourselves",
	// task-description imperatives, not identifying tokens in their own right.
	"add", "adds", "adding", "change", "changes", "check", "create", "fix",
	"fixes", "fixing", "find", "get", "gets", "implement", "look", "make",
	"need", "needs", "new", "please", "refactor", "remove", "rename",
	"update", "updates", "updating", "use", "using", "want", "write",
)

func buildStopWordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
