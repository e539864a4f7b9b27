package entity

import (
	"strings"
	"time"

	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/consts"
)

type Tutorial struct {
	ID              int64
	Name            string
	Slug            string
	Description     string
	Content         string
	Visibility      consts.Visibility
	Active          bool
	Metakeywords    string
	Metadescription string
	UserID          *int64
	UserName        string
	CreatedAt       time.Time
	Comments        []Comment
}

// Keywords splits the comma separated metakeywords.
func (t Tutorial) Keywords() []string {
	var keys []string
	for _, k := range strings.Split(t.Metakeywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

type Comment struct {
	ID          int64
	TutorialID  int64
	UserID      int64
	UserName    string
	Description string
	CreatedAt   time.Time
}
