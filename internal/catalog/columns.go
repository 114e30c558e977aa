package catalog

import (
	"regexp"
	"strconv"
)

// Role names a well-known catalog column.
type Role string

const (
	RoleID        Role = "id"
	RoleTitle     Role = "title"
	RoleAuthor    Role = "author"
	RolePublisher Role = "publisher"
	RoleYear      Role = "year"
	RoleCategory  Role = "category"
	RoleStatus    Role = "status"
	RoleKeyword   Role = "keyword"
	RoleUpdated   Role = "updated"
)

// roleCandidates maps each role onto the header names catalogs commonly use
// for it. Japanese variants are included because the reference catalogs are
// bilingual.
var roleCandidates = map[Role][]string{
	RoleID:        {"ID", "管理番号", "登録番号", "登録No."},
	RoleTitle:     {"Title", "タイトル", "書名", "題名"},
	RoleAuthor:    {"Author", "著者", "作者", "編者", "編・著者名"},
	RolePublisher: {"Publisher", "出版社", "発行社名", "発行所"},
	RoleYear:      {"Year", "発行年", "出版年", "刊行年", "発行年月"},
	RoleCategory:  {"Category", "分類", "カテゴリ", "NDC", "ジャンル"},
	RoleStatus:    {"Status", "状態", "ステータス", "貸出状況", "在庫"},
	RoleKeyword:   {"Keywords", "キーワード", "KW"},
	RoleUpdated:   {"Updated", "修正日", "更新日", "最終更新"},
}

// InferColumns maps each recognizable role to its column index. Roles with
// no matching header are absent from the result.
func (t *Table) InferColumns() map[Role]int {
	found := make(map[Role]int)
	for role, candidates := range roleCandidates {
		for _, name := range candidates {
			if idx := t.Column(name); idx >= 0 {
				found[role] = idx
				break
			}
		}
	}
	return found
}

var yearRe = regexp.MustCompile(`(\d{4})`)

// ExtractYear pulls the first plausible 4-digit year out of a cell value.
// Rows without one sort after rows with one.
func ExtractYear(v string) (int, bool) {
	m := yearRe.FindStringSubmatch(v)
	if m == nil {
		return 0, false
	}
	y, _ := strconv.Atoi(m[1])
	if y < 1000 || y > 2100 {
		return 0, false
	}
	return y, true
}
