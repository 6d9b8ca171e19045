// Package password implements the credential-policy guards applied when a
// vault password is enrolled or rotated: a static common-password blacklist
// with case-insensitive exact and substring matching, plus a zxcvbn strength
// advisory for callers building an enrollment UI.
package password

import "strings"

// commonPasswords is the static blacklist: 227 lowercase entries covering
// the top breached passwords, keyboard patterns, sequential digits, common
// names and words, years 1990-2024, and leetspeak variants. The list is
// compiled into the binary and never loaded from disk, so a hostile
// filesystem cannot weaken the screen.
var commonPasswords = [...]string{
	// Top breached passwords
	"password", "password1", "password123", "letmein", "welcome",
	"welcome1", "admin", "administrator", "root", "login",
	"iloveyou", "trustno1", "sunshine", "princess", "monkey",
	"dragon", "shadow", "master", "superman", "batman",
	"starwars", "whatever", "freedom", "secret", "abc123",
	"abcd1234", "test123", "hello123", "letmein123", "access",
	"flower", "hottie", "loveme", "696969", "football1",
	"iloveu", "babygirl", "lovely", "michael1", "jordan23",

	// Keyboard patterns
	"qwerty", "qwertyuiop", "qwerty123", "asdfgh", "asdfghjkl",
	"zxcvbnm", "qazwsx", "qazwsxedc", "1q2w3e4r", "1q2w3e4r5t",
	"1qaz2wsx", "zaq12wsx", "poiuytrewq", "mnbvcxz", "qweasdzxc",
	"q1w2e3r4", "azerty", "qwer1234", "asdf1234", "zxcv1234",

	// Sequential digits
	"123456", "1234567", "12345678", "123456789", "1234567890",
	"12345", "1234", "0123456789", "987654321", "87654321",
	"7654321", "654321", "54321", "123321", "112233",
	"121212", "789456123", "147258369", "159357", "102030",

	// Single-character repetitions (exact match only; excluded from the
	// substring pass below)
	"aaaaaaaa", "11111111", "00000000", "22222222", "55555555",
	"77777777", "88888888", "99999999", "qqqqqqqq", "xxxxxxxx",
	"zzzzzzzz", "666666",

	// Common names
	"michael", "jennifer", "jessica", "ashley", "amanda",
	"daniel", "matthew", "joshua", "andrew", "anthony",
	"william", "jonathan", "nicole", "melissa", "stephanie",
	"elizabeth", "charlie", "thomas", "robert", "richard",
	"george", "edward", "samantha", "victoria", "brandon",
	"tyler", "austin", "hannah", "taylor", "morgan",
	"bailey", "madison", "olivia", "emily", "sophia",
	"isabella", "natalie", "lauren", "rachel", "samuel",

	// Common words
	"football", "baseball", "soccer", "hockey", "basketball",
	"summer", "winter", "spring", "autumn", "computer",
	"internet", "cheese", "chocolate", "cookie", "banana",
	"orange", "purple", "yellow", "silver", "golden",
	"diamond", "tigger", "pepper", "ginger", "angel",
	"heaven", "forever", "eternity", "mustang", "ferrari",
	"corvette", "yankees", "lakers", "cowboys", "steelers",
	"liverpool", "chelsea", "arsenal", "pokemon", "nintendo",

	// Years 1990-2024
	"1990", "1991", "1992", "1993", "1994",
	"1995", "1996", "1997", "1998", "1999",
	"2000", "2001", "2002", "2003", "2004",
	"2005", "2006", "2007", "2008", "2009",
	"2010", "2011", "2012", "2013", "2014",
	"2015", "2016", "2017", "2018", "2019",
	"2020", "2021", "2022", "2023", "2024",

	// Leetspeak variants
	"p@ssw0rd", "p@ssword", "passw0rd", "pa$$word", "pa55word",
	"l3tm3in", "adm1n", "h4cker", "m0nkey", "dr@gon",
	"s3cret", "w3lcome", "1loveyou", "b@seball", "f00tball",
	"m@ster", "sh@dow", "qw3rty", "tr0ub4dor", "n1nj@",
}

// substringMinLen is the shortest blacklist entry considered for containment
// matching. Shorter entries (years, "1234", ...) match exactly only, keeping
// the substring pass from flagging every password that happens to contain a
// four-digit run.
const substringMinLen = 6

// IsCommonPassword reports whether pw equals, or weakly derives from, a
// blacklisted password. Matching is case-insensitive (ASCII fold). An entry
// of length >= 6 that is not a single-character repetition also matches as a
// substring, so "password$2024" is caught alongside "password" itself; the
// repetition guard keeps "aaaaaaaa" from matching any input containing "aa".
func IsCommonPassword(pw string) bool {
	if pw == "" {
		return false
	}
	folded := asciiLower(pw)

	for _, entry := range commonPasswords {
		if folded == entry {
			return true
		}
	}
	for _, entry := range commonPasswords {
		if len(entry) < substringMinLen || isRepetition(entry) {
			continue
		}
		if strings.Contains(folded, entry) {
			return true
		}
	}
	return false
}

// asciiLower folds ASCII upper-case letters to lower case, leaving all other
// bytes untouched. Blacklist entries are ASCII, so a full Unicode case fold
// would only add match surface the entries cannot use.
func asciiLower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// isRepetition reports whether s consists of a single byte repeated.
func isRepetition(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return len(s) > 0
}
