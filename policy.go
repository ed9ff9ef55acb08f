package bloglist

// CanDelete is the resource ownership policy: only the user referenced by
// the blog's owner id may delete it. Blogs without an owner are undeletable.
// Likes updates deliberately carry no ownership gate — see the update
// handler.
func CanDelete(user *User, blog *Blog) bool {
	if user == nil || blog == nil || blog.UserID == nil {
		return false
	}
	return *blog.UserID == user.ID
}
