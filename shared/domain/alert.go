package domain

// MaxKeywordLength bounds a keyword in characters.
const MaxKeywordLength = 255

type KeywordAlertCreationData struct {
	Author  Author
	Keyword Keyword
}

type KeywordAlert struct {
	Id      AlertId
	Author  Author
	Keyword Keyword
}
