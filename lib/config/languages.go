package config

import (
	"errors"
	"fmt"
	"sort"

	"cfcli/lib/textutil"
)

var ErrUnknownLanguage = errors.New("unknown language code")

var languages = map[int]string{
	43: "GNU GCC C11 5.1.0",
	50: "GNU G++14 6.4.0",
	54: "GNU G++17 7.3.0",
	65: "C# 8, .NET Core 3.1",
	79: "C# 10, .NET SDK 6.0",
	9:  "C# Mono 6.8",
	28: "D DMD32 v2.105.0",
	32: "Go 1.19.5",
	12: "Haskell GHC 8.10.1",
	87: "Java 21 64bit",
	36: "Java 8 32bit",
	83: "Kotlin 1.7.20",
	88: "Kotlin 1.9.21",
	19: "OCaml 4.02.1",
	3:  "Delphi 7",
	4:  "Free Pascal 3.2.2",
	51: "PascalABC.NET 3.8.3",
	13: "Perl 5.20.1",
	6:  "PHP 8.1.7",
	7:  "Python 2.7.18",
	31: "Python 3.8.10",
	40: "PyPy 2.7.13 (7.3.0)",
	41: "PyPy 3.6.9 (7.3.0)",
	70: "PyPy 3.9.10 (7.3.9, 64bit)",
	67: "Ruby 3.2.2",
	75: "Rust 1.75.0 (2021)",
	20: "Scala 2.12.8",
	34: "JavaScript V8 4.8.0",
	55: "Node.js 15.8.0 (64bit)",
}

type Language struct {
	Code int
	Name string
}

func LanguageName(code int) (string, error) {
	name, ok := languages[code]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownLanguage, code)
	}
	return name, nil
}

// Languages returns the table sorted by code.
func Languages() []Language {
	out := make([]Language, 0, len(languages))
	for code, name := range languages {
		out = append(out, Language{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}

// FindLanguage resolves a language by fuzzy name, ex. "g++17" -> 54.
func FindLanguage(name string) (Language, error) {
	names := make([]string, 0, len(languages))
	for _, l := range Languages() {
		names = append(names, l.Name)
	}
	match, ok := textutil.BestMatch(name, names)
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	for _, l := range Languages() {
		if l.Name == match.Value {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}
