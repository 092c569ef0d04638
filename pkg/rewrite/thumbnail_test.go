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
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// photoGrid renders one photo section the way nova-obra.tsx does before migration
func photoGrid(list string) string {
	return `              <View style={styles.photoGrid}>
                {` + list + `.map((foto, index) => (
                  <View key={index} style={styles.photoCard}>
                    <Image source={{ uri: foto.uri }} style={styles.photoThumbnail} />
                    {renderUtmBadge(foto)}
                    <TouchableOpacity style={styles.photoRemoveButton} onPress={() => removePhoto(index)}>
                      <Text style={styles.photoRemoveText}>×</Text>
                    </TouchableOpacity>
                  </View>
                ))}
              </View>
`
}

// migratedGrid is photoGrid after both rules ran
func migratedGrid(list string) string {
	return `              <View style={styles.photoGrid}>
                {` + list + `.map((foto, index) => (
                  <View key={index} style={styles.photoCard}>
                    ` + placaThumbnail + `
                    <TouchableOpacity style={styles.photoRemoveButton} onPress={() => removePhoto(index)}>
                      <Text style={styles.photoRemoveText}>×</Text>
                    </TouchableOpacity>
                  </View>
                ))}
              </View>
`
}

func TestWrapThumbnailRule(t *testing.T) {
	rules := []Rule{WrapThumbnailRule()}

	tests := []struct {
		name      string
		content   string
		want      string
		wantCount int
	}{
		{
			name:      "newline_between_card_and_image",
			content:   photoCardOpen + "\n" + plainThumbnail,
			want:      photoCardOpen + "\n" + placaThumbnail,
			wantCount: 1,
		},
		{
			name:      "indented_image",
			content:   photoCardOpen + "\n\t\t    " + plainThumbnail + "\n",
			want:      photoCardOpen + "\n\t\t    " + placaThumbnail + "\n",
			wantCount: 1,
		},
		{
			name:      "no_whitespace",
			content:   photoCardOpen + plainThumbnail,
			want:      photoCardOpen + placaThumbnail,
			wantCount: 1,
		},
		{
			name:      "image_not_directly_after_card",
			content:   photoCardOpen + "\n<Text>x</Text>\n" + plainThumbnail,
			want:      photoCardOpen + "\n<Text>x</Text>\n" + plainThumbnail,
			wantCount: 0,
		},
		{
			name:      "attribute_order_differs",
			content:   photoCardOpen + "\n" + `<Image style={styles.photoThumbnail} source={{ uri: foto.uri }} />`,
			want:      photoCardOpen + "\n" + `<Image style={styles.photoThumbnail} source={{ uri: foto.uri }} />`,
			wantCount: 0,
		},
		{
			name:      "image_without_card",
			content:   plainThumbnail,
			want:      plainThumbnail,
			wantCount: 0,
		},
		{
			name:      "vertical_tab_between_card_and_image",
			content:   photoCardOpen + "\n\v  " + plainThumbnail,
			want:      photoCardOpen + "\n\v  " + placaThumbnail,
			wantCount: 1,
		},
		{
			name:      "nbsp_between_card_and_image",
			content:   photoCardOpen + "\u00a0" + plainThumbnail,
			want:      photoCardOpen + "\u00a0" + placaThumbnail,
			wantCount: 1,
		},
		{
			name:      "line_separator_between_card_and_image",
			content:   photoCardOpen + "\u2028" + plainThumbnail,
			want:      photoCardOpen + "\u2028" + placaThumbnail,
			wantCount: 1,
		},
		{
			name:      "ideographic_space_between_card_and_image",
			content:   photoCardOpen + "\n\u3000" + plainThumbnail,
			want:      photoCardOpen + "\n\u3000" + placaThumbnail,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, counts := RewriteString(tt.content, rules)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, counts[WrapThumbnailRuleName])
		})
	}
}

func TestWrapThumbnailRule_SecondPassIsNoop(t *testing.T) {
	rules := []Rule{WrapThumbnailRule()}

	once, counts := RewriteString(photoCardOpen+"\n"+plainThumbnail, rules)
	require.Equal(t, 1, counts[WrapThumbnailRuleName])

	twice, counts := RewriteString(once, rules)
	assert.Equal(t, 0, counts[WrapThumbnailRuleName])
	assert.Equal(t, once, twice)
}

func TestWrapThumbnailRule_MultipleOccurrences(t *testing.T) {
	rules := []Rule{WrapThumbnailRule()}

	sections := []string{"fotosAntes", "fotosDurante", "fotosDepois", "fotosAbertura"}
	var in, want strings.Builder
	for _, s := range sections {
		in.WriteString("<Section name=\"" + s + "\">\n")
		in.WriteString(photoCardOpen + "\n  " + plainThumbnail + "\n")
		in.WriteString("</Section>\n")

		want.WriteString("<Section name=\"" + s + "\">\n")
		want.WriteString(photoCardOpen + "\n  " + placaThumbnail + "\n")
		want.WriteString("</Section>\n")
	}

	got, counts := RewriteString(in.String(), rules)
	assert.Equal(t, len(sections), counts[WrapThumbnailRuleName])
	assert.Equal(t, len(sections), strings.Count(got, "<PhotoWithPlaca"))
	assert.NotContains(t, got, plainThumbnail)
	if diff := cmp.Diff(want.String(), got); diff != "" {
		t.Errorf("rewritten text mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveUtmBadgeRule(t *testing.T) {
	rules := []Rule{RemoveUtmBadgeRule()}

	tests := []struct {
		name      string
		content   string
		want      string
		wantCount int
	}{
		{
			name:      "preceding_newline_and_indent",
			content:   "<Image />\n    {renderUtmBadge(foto)}\n    <Text />",
			want:      "<Image />\n    <Text />",
			wantCount: 1,
		},
		{
			name:      "trailing_whitespace_kept",
			content:   "a {renderUtmBadge(foto)}   \n\tb",
			want:      "a   \n\tb",
			wantCount: 1,
		},
		{
			name:      "no_preceding_whitespace",
			content:   "a{renderUtmBadge(foto)}b",
			want:      "ab",
			wantCount: 1,
		},
		{
			name:      "multiple",
			content:   "x\n  {renderUtmBadge(foto)}\ny\n  {renderUtmBadge(foto)}\nz",
			want:      "x\ny\nz",
			wantCount: 2,
		},
		{
			name:      "other_argument_untouched",
			content:   "x\n  {renderUtmBadge(photo)}",
			want:      "x\n  {renderUtmBadge(photo)}",
			wantCount: 0,
		},
		{
			name:      "vertical_tab_removed",
			content:   "x\v{renderUtmBadge(foto)}",
			want:      "x",
			wantCount: 1,
		},
		{
			name:      "nbsp_removed",
			content:   "x\u00a0{renderUtmBadge(foto)}",
			want:      "x",
			wantCount: 1,
		},
		{
			name:      "line_separator_removed",
			content:   "x\u2028{renderUtmBadge(foto)}",
			want:      "x",
			wantCount: 1,
		},
		{
			name:      "ideographic_space_removed",
			content:   "x\n\u3000{renderUtmBadge(foto)}",
			want:      "x",
			wantCount: 1,
		},
		{
			name:      "unit_and_record_separators_removed",
			content:   "x\x1c\x1f\u0085{renderUtmBadge(foto)}",
			want:      "x",
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, counts := RewriteString(tt.content, rules)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, counts[RemoveUtmBadgeRuleName])
		})
	}
}

func TestRemoveUtmBadgeRule_Idempotent(t *testing.T) {
	rules := []Rule{RemoveUtmBadgeRule()}
	content := photoGrid("fotosAntes") + photoGrid("fotosDepois")

	once, counts := RewriteString(content, rules)
	require.Equal(t, 2, counts[RemoveUtmBadgeRuleName])

	twice, counts := RewriteString(once, rules)
	assert.Equal(t, 0, counts[RemoveUtmBadgeRuleName])
	assert.Equal(t, once, twice)
}

func TestThumbnailRules_ZeroMatchIsByteIdentical(t *testing.T) {
	content := "import { View } from 'react-native'\r\n\r\nconst título = 'Nova obra' // ção\n\t  \n<View style={styles.photoCard}>\n"

	result, err := NewRegexRewriter().Rewrite(context.Background(), strings.NewReader(content), ThumbnailRules())
	require.NoError(t, err)
	assert.False(t, result.WasModified)
	assert.Equal(t, []byte(content), result.ModifiedContent)
	assert.Equal(t, map[string]int{WrapThumbnailRuleName: 0, RemoveUtmBadgeRuleName: 0}, result.Counts)
}

func TestThumbnailRules_Screen(t *testing.T) {
	content := "export default function NovaObra() {\n  return (\n" +
		photoGrid("fotosAntes") + photoGrid("fotosDurante") + photoGrid("fotosDepois") +
		"  )\n}\n"
	want := "export default function NovaObra() {\n  return (\n" +
		migratedGrid("fotosAntes") + migratedGrid("fotosDurante") + migratedGrid("fotosDepois") +
		"  )\n}\n"

	result, err := NewRegexRewriter().Rewrite(context.Background(), strings.NewReader(content), ThumbnailRules())
	require.NoError(t, err)
	assert.True(t, result.WasModified)
	assert.Equal(t, 6, result.ReplacementCount)
	assert.Equal(t, 3, result.Count(WrapThumbnailRuleName))
	assert.Equal(t, 3, result.Count(RemoveUtmBadgeRuleName))
	if diff := cmp.Diff(want, string(result.ModifiedContent)); diff != "" {
		t.Errorf("rewritten screen mismatch (-want +got):\n%s", diff)
	}
}

func TestThumbnailRules_OrderIndependent(t *testing.T) {
	content := photoGrid("fotosAntes") + photoGrid("fotosDepois")

	forward, _ := RewriteString(content, []Rule{WrapThumbnailRule(), RemoveUtmBadgeRule()})
	backward, _ := RewriteString(content, []Rule{RemoveUtmBadgeRule(), WrapThumbnailRule()})
	assert.Equal(t, forward, backward)
}

func TestRuleByName(t *testing.T) {
	for _, name := range RuleNames() {
		rule, err := RuleByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, rule.Name)
		assert.NotEmpty(t, rule.Effects)
	}

	_, err := RuleByName("rename-everything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown rule "rename-everything"`)
}
