package domain

type News struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	TitleAr     string `json:"titleAr"`
	Content     string `json:"content"`
	ContentAr   string `json:"contentAr"`
	Image       string `json:"image"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
	Category    string `json:"category"`
	Source      string `json:"source"`
}
