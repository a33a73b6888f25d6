package docxtpl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store locates template files under a templates directory. The layout is
// fixed:
//
//	inventory.docx                     document packet inventory
//	orders/<n>.docx                    consolidated/responsible order, n from style
//	contracts/<style>.docx             employment contract
//	order.docx                         individual hiring order
//	instructions/<position>_<style>.docx  job description per position
//
// Absence of any template is a normal, per-document-type outcome: Lookup
// methods report it with ok=false rather than an error.
type Store struct {
	// Dir is the templates root directory.
	Dir string
}

// Inventory returns the packet inventory template path.
func (s *Store) Inventory() (string, bool) {
	return s.probe("inventory.docx")
}

// Order returns the consolidated-order template path for a style. The
// template is keyed by the style's numeric part: style "style3" maps to
// orders/3.docx.
func (s *Store) Order(style string) (string, bool) {
	num := strings.TrimPrefix(style, "style")
	return s.probe(filepath.Join("orders", num+".docx"))
}

// Contract returns the employment-contract template path for a style.
func (s *Store) Contract(style string) (string, bool) {
	return s.probe(filepath.Join("contracts", style+".docx"))
}

// IndividualOrder returns the per-person hiring-order template path.
func (s *Store) IndividualOrder() (string, bool) {
	return s.probe("order.docx")
}

// JobDescription returns the job-description template path for a position
// title and style.
func (s *Store) JobDescription(position, style string) (string, bool) {
	name := fmt.Sprintf("%s_%s.docx", strings.TrimSpace(position), style)
	return s.probe(filepath.Join("instructions", name))
}

func (s *Store) probe(rel string) (string, bool) {
	path := filepath.Join(s.Dir, rel)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
