// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rewrite

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Built-in rule names
const (
	WrapThumbnailRuleName  = "wrap-thumbnail"
	RemoveUtmBadgeRuleName = "remove-utm-badge"
)

// DefaultFileFilterGlob restricts the built-in rules to React Native screens
const DefaultFileFilterGlob = "**/*.tsx"

const (
	photoCardOpen  = `<View key={index} style={styles.photoCard}>`
	plainThumbnail = `<Image source={{ uri: foto.uri }} style={styles.photoThumbnail} />`
	utmBadgeCall   = `{renderUtmBadge(foto)}`
)

// placaThumbnail replaces plainThumbnail. Every identifier it references (obra,
// tipoServico, isCompUser, equipe, equipeExecutora, openPhotoFullscreen) must already
// be in scope in the screen being rewritten.
const placaThumbnail = `<TouchableOpacity onPress={() => openPhotoFullscreen(foto)} activeOpacity={0.8}>
                      <PhotoWithPlaca
                        uri={foto.uri}
                        obraNumero={obra}
                        tipoServico={tipoServico}
                        equipe={isCompUser ? equipeExecutora : equipe}
                        latitude={foto.latitude}
                        longitude={foto.longitude}
                        utmX={foto.utmX}
                        utmY={foto.utmY}
                        utmZone={foto.utmZone}
                        style={styles.photoThumbnail}
                      />
                    </TouchableOpacity>`

// whitespace matches a run of Unicode whitespace. RE2's \s is ASCII only; the
// class adds \v, U+001C..U+001F, NEL and the Z categories such as NBSP and U+2028.
const whitespace = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]*`

var (
	// group 1 keeps the card opening tag and the whitespace after it
	wrapThumbnailPattern = regexp.MustCompile(`(` + regexp.QuoteMeta(photoCardOpen) + whitespace + `)` + regexp.QuoteMeta(plainThumbnail))

	utmBadgePattern = regexp.MustCompile(whitespace + regexp.QuoteMeta(utmBadgeCall))
)

// WrapThumbnailRule wraps each plain photo card thumbnail in a TouchableOpacity that
// opens the photo fullscreen and renders it through PhotoWithPlaca.
//
// The match is textual. A card whose Image tag differs in attribute order or inner
// spacing is left alone.
func WrapThumbnailRule() Rule {
	return Rule{
		Name:        WrapThumbnailRuleName,
		Description: "wrap photo card thumbnails in TouchableOpacity + PhotoWithPlaca",
		Pattern:     wrapThumbnailPattern,
		Replacement: "${1}" + placaThumbnail,
		Effects: []string{
			"added PhotoWithPlaca to %d thumbnail(s)",
			"added TouchableOpacity to %d thumbnail(s)",
		},
		FileFilterGlob: DefaultFileFilterGlob,
	}
}

// RemoveUtmBadgeRule drops renderUtmBadge calls and the whitespace run before them.
// PhotoWithPlaca already shows the UTM coordinates.
func RemoveUtmBadgeRule() Rule {
	return Rule{
		Name:        RemoveUtmBadgeRuleName,
		Description: "remove renderUtmBadge overlays made redundant by PhotoWithPlaca",
		Pattern:     utmBadgePattern,
		Replacement: "",
		Effects: []string{
			"removed %d duplicate renderUtmBadge overlay(s)",
		},
		FileFilterGlob: DefaultFileFilterGlob,
	}
}

// ThumbnailRules returns the built-in rules in the order they must run
func ThumbnailRules() []Rule {
	return []Rule{
		WrapThumbnailRule(),
		RemoveUtmBadgeRule(),
	}
}

// RuleNames lists the built-in rule names in run order
func RuleNames() []string {
	return []string{WrapThumbnailRuleName, RemoveUtmBadgeRuleName}
}

// RuleByName returns the built-in rule with the given name
func RuleByName(name string) (Rule, error) {
	for _, rule := range ThumbnailRules() {
		if rule.Name == name {
			return rule, nil
		}
	}
	return Rule{}, errors.Errorf("unknown rule %q", name)
}
