package extractor

import (
	"sort"
	"strings"

	"resume-assist-go/internal/types"
)

// ExtractSkills 在全文中做大小写不敏感的子串匹配，
// 输出保持词表枚举顺序且无重复项。
func ExtractSkills(text string) []string {
	textLower := strings.ToLower(text)
	skills := make([]string, 0, 16)
	seen := make(map[string]struct{}, 16)

	for _, keyword := range SkillVocabulary {
		if _, ok := seen[keyword]; ok {
			continue
		}
		if strings.Contains(textLower, strings.ToLower(keyword)) {
			skills = append(skills, keyword)
			seen[keyword] = struct{}{}
		}
	}
	return skills
}

// ScorePositions 根据技能推荐合适的岗位方向。
// 某个方向至少命中2项技能才会入选，得分 = 命中数 / 该方向词表大小，
// 按得分降序取前5个。
func ScorePositions(skills []string) []types.PositionSuggestion {
	skillSet := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillSet[s] = struct{}{}
	}

	suggestions := make([]types.PositionSuggestion, 0, len(PositionCategories))
	for _, category := range PositionCategories {
		var matched []string
		for _, s := range skills {
			for _, required := range category.Skills {
				if s == required {
					matched = append(matched, s)
					break
				}
			}
		}
		if len(matched) < 2 {
			continue
		}
		suggestions = append(suggestions, types.PositionSuggestion{
			Position:      category.Name,
			Score:         float64(len(matched)) / float64(len(category.Skills)),
			MatchedSkills: matched,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

// ExtractJDSkills 从岗位描述文本中提取技能关键词，输出按词表顺序排列
func ExtractJDSkills(jdText string) []string {
	jdLower := strings.ToLower(jdText)
	var skills []string
	seen := make(map[string]struct{})

	// 按类别名排序保证遍历顺序稳定
	categories := make([]string, 0, len(JDSkillCategories))
	for name := range JDSkillCategories {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	for _, name := range categories {
		for _, skill := range JDSkillCategories[name] {
			if _, ok := seen[skill]; ok {
				continue
			}
			if strings.Contains(jdLower, strings.ToLower(skill)) {
				skills = append(skills, skill)
				seen[skill] = struct{}{}
			}
		}
	}
	return skills
}
