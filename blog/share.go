package blog

// ShareLink is one social sharing target for a post.
type ShareLink struct {
	Name  string // "Twitter", "LinkedIn", "Facebook", "Email"
	Icon  string // Font Awesome class
	URL   string
	Popup bool // open in a new tab
}

// ShareLinks builds the sharing targets for a post titled title shown at pageURL.
func ShareLinks(pageURL, title string) []ShareLink {
	u := EncodeURIComponent(pageURL)
	t := EncodeURIComponent(title)
	return []ShareLink{
		{Name: "Twitter", Icon: "fab fa-twitter", URL: "https://twitter.com/intent/tweet?text=" + t + "&url=" + u, Popup: true},
		{Name: "LinkedIn", Icon: "fab fa-linkedin", URL: "https://www.linkedin.com/sharing/share-offsite/?url=" + u, Popup: true},
		{Name: "Facebook", Icon: "fab fa-facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + u, Popup: true},
		{Name: "Email", Icon: "fas fa-envelope", URL: "mailto:?subject=" + t + "&body=Check out this post: " + u},
	}
}
