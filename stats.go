package bloglist

// Aggregate statistics over an in-memory blog collection. All functions are
// total and side-effect free. Grouping treats an absent author as its own
// group (the empty string key) and preserves first-encounter order so ties
// resolve to the group seen first, not alphabetically.

// BlogSummary is the favorite-blog projection. The zero value doubles as the
// empty-collection sentinel.
type BlogSummary struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Likes  int    `json:"likes,omitempty"`
}

// AuthorBlogs pairs an author with their post count.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes pairs an author with their cumulative likes.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums likes across the collection, zero for empty input.
func TotalLikes(blogs []*Blog) int {
	total := 0
	for _, blog := range blogs {
		total += blog.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, first one wins on ties.
// Empty input yields the zero summary rather than an error.
func FavoriteBlog(blogs []*Blog) BlogSummary {
	if len(blogs) == 0 {
		return BlogSummary{}
	}

	favorite := blogs[0]
	for _, blog := range blogs[1:] {
		if blog.Likes > favorite.Likes {
			favorite = blog
		}
	}

	return BlogSummary{
		Title:  favorite.Title,
		Author: favorite.Author,
		Likes:  favorite.Likes,
	}
}

// MostBlogs returns the author with the most posts, nil for empty input.
func MostBlogs(blogs []*Blog) *AuthorBlogs {
	authors, counts := groupByAuthor(blogs, func(*Blog) int { return 1 })
	if len(authors) == 0 {
		return nil
	}

	top := authors[0]
	for _, author := range authors[1:] {
		if counts[author] > counts[top] {
			top = author
		}
	}

	return &AuthorBlogs{Author: top, Blogs: counts[top]}
}

// MostLikes returns the author with the highest summed likes, nil for empty
// input.
func MostLikes(blogs []*Blog) *AuthorLikes {
	authors, likes := groupByAuthor(blogs, func(b *Blog) int { return b.Likes })
	if len(authors) == 0 {
		return nil
	}

	top := authors[0]
	for _, author := range authors[1:] {
		if likes[author] > likes[top] {
			top = author
		}
	}

	return &AuthorLikes{Author: top, Likes: likes[top]}
}

// groupByAuthor folds per-blog values into per-author sums, returning the
// author keys in first-encounter order.
func groupByAuthor(blogs []*Blog, value func(*Blog) int) ([]string, map[string]int) {
	var authors []string
	sums := map[string]int{}

	for _, blog := range blogs {
		if _, seen := sums[blog.Author]; !seen {
			authors = append(authors, blog.Author)
		}
		sums[blog.Author] += value(blog)
	}

	return authors, sums
}
