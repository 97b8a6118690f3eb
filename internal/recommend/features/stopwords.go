// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

// englishStopWords is the English stop-word list applied before n-gram
// construction. Removal happens at the word level, so stop words never
// appear inside bigrams either.
var englishStopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "about", "above", "across", "after", "afterwards", "again",
		"against", "all", "almost", "alone", "along", "already", "also",
		"although", "always", "am", "among", "amongst", "an", "and",
		"another", "any", "anyhow", "anyone", "anything", "anyway",
		"anywhere", "are", "around", "as", "at", "back", "be", "became",
		"because", "become", "becomes", "becoming", "been", "before",
		"beforehand", "behind", "being", "below", "beside", "besides",
		"between", "beyond", "both", "bottom", "but", "by", "call", "can",
		"cannot", "could", "did", "do", "does", "doing", "done", "down",
		"due", "during", "each", "either", "else", "elsewhere", "empty",
		"enough", "even", "ever", "every", "everyone", "everything",
		"everywhere", "except", "few", "for", "former", "formerly", "from",
		"front", "full", "further", "had", "has", "have", "he", "hence",
		"her", "here", "hereafter", "hereby", "herein", "hereupon", "hers",
		"herself", "him", "himself", "his", "how", "however", "i", "if",
		"in", "indeed", "into", "is", "it", "its", "itself", "just", "last",
		"latter", "latterly", "least", "less", "made", "many", "may", "me",
		"meanwhile", "might", "mine", "more", "moreover", "most", "mostly",
		"much", "must", "my", "myself", "namely", "neither", "never",
		"nevertheless", "next", "no", "nobody", "none", "noone", "nor",
		"not", "nothing", "now", "nowhere", "of", "off", "often", "on",
		"once", "one", "only", "onto", "or", "other", "others", "otherwise",
		"our", "ours", "ourselves", "out", "over", "own", "per", "perhaps",
		"please", "rather", "re", "same", "seem", "seemed", "seeming",
		"seems", "several", "she", "should", "since", "so", "some",
		"somehow", "someone", "something", "sometime", "sometimes",
		"somewhere", "still", "such", "than", "that", "the", "their",
		"them", "themselves", "then", "thence", "there", "thereafter",
		"thereby", "therefore", "therein", "thereupon", "these", "they",
		"this", "those", "though", "through", "throughout", "thru", "thus",
		"to", "together", "too", "top", "toward", "towards", "under",
		"until", "up", "upon", "us", "very", "via", "was", "we", "well",
		"were", "what", "whatever", "when", "whence", "whenever", "where",
		"whereafter", "whereas", "whereby", "wherein", "whereupon",
		"wherever", "whether", "which", "while", "whither", "who",
		"whoever", "whole", "whom", "whose", "why", "will", "with",
		"within", "without", "would", "yet", "you", "your", "yours",
		"yourself", "yourselves",
	}
	for _, w := range words {
		englishStopWords[w] = struct{}{}
	}
}

// isStopWord reports whether w is an English stop word.
func isStopWord(w string) bool {
	_, ok := englishStopWords[w]
	return ok
}
