package textvec

// englishStopWords is the common English stop-word list used by TF-IDF
// vectorizers; only tokens of two or more characters can ever match.
var englishStopWords = []string{
	"about", "above", "after", "again", "against", "ain", "all", "am",
	"an", "and", "any", "are", "aren", "as", "at", "be", "because",
	"been", "before", "being", "below", "between", "both", "but", "by", "can",
	"couldn", "did", "didn", "do", "does", "doesn", "doing", "don", "down",
	"during", "each", "few", "for", "from", "further", "had", "hadn", "has",
	"hasn", "have", "haven", "having", "he", "her", "here", "hers", "herself",
	"him", "himself", "his", "how", "if", "in", "into", "is", "isn", "it",
	"its", "itself", "just", "ll", "ma", "me", "mightn", "more", "most",
	"mustn", "my", "myself", "needn", "no", "nor", "not", "now", "of", "off",
	"on", "once", "only", "or", "other", "our", "ours", "ourselves", "out",
	"over", "own", "re", "same", "shan", "she", "should", "shouldn", "so",
	"some", "such", "than", "that", "the", "their", "theirs", "them",
	"themselves", "then", "there", "these", "they", "this", "those", "through",
	"to", "too", "under", "until", "up", "ve", "very", "was", "wasn", "we",
	"were", "weren", "what", "when", "where", "which", "while", "who", "whom",
	"why", "will", "with", "won", "wouldn", "you", "your", "yours",
	"yourself", "yourselves",
}

// EnglishStopWords returns a fresh copy of the built-in English list.
func EnglishStopWords() []string { return append([]string(nil), englishStopWords...) }
