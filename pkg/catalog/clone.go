package catalog

// Clone returns a deep copy of the artist.
func (a Artist) Clone() Artist {
	out := a
	if a.Followers != nil {
		f := *a.Followers
		f.Href = cloneString(a.Followers.Href)
		out.Followers = &f
	}
	out.Genres = cloneStrings(a.Genres)
	out.Images = cloneImages(a.Images)
	out.Popularity = cloneInt(a.Popularity)
	return out
}

// Clone returns a deep copy of the album item.
func (a AlbumItem) Clone() AlbumItem {
	out := a
	out.AvailableMarkets = cloneStrings(a.AvailableMarkets)
	out.Images = cloneImages(a.Images)
	out.Restrictions = cloneRestrictions(a.Restrictions)
	out.Artists = CloneArtists(a.Artists)
	return out
}

// Clone returns a deep copy of the page, items included.
func (p AlbumPage) Clone() AlbumPage {
	out := p
	out.Next = cloneString(p.Next)
	out.Previous = cloneString(p.Previous)
	if p.Items != nil {
		out.Items = make([]AlbumItem, len(p.Items))
		for i, item := range p.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the album.
func (a Album) Clone() Album {
	out := a
	out.AvailableMarkets = cloneStrings(a.AvailableMarkets)
	out.Images = cloneImages(a.Images)
	out.Restrictions = cloneRestrictions(a.Restrictions)
	out.Artists = CloneArtists(a.Artists)
	return out
}

// Clone returns a deep copy of the track.
func (t Track) Clone() Track {
	out := t
	out.Album = t.Album.Clone()
	out.Artists = CloneArtists(t.Artists)
	out.AvailableMarkets = cloneStrings(t.AvailableMarkets)
	out.ExternalIDs.EAN = cloneString(t.ExternalIDs.EAN)
	out.ExternalIDs.UPC = cloneString(t.ExternalIDs.UPC)
	if t.LinkedFrom != nil {
		lf := *t.LinkedFrom
		out.LinkedFrom = &lf
	}
	out.Restrictions = cloneRestrictions(t.Restrictions)
	out.PreviewURL = cloneString(t.PreviewURL)
	return out
}

// CloneArtists deep-copies a slice of artists. A nil slice stays nil.
func CloneArtists(in []Artist) []Artist {
	if in == nil {
		return nil
	}
	out := make([]Artist, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

// CloneTracks deep-copies a slice of tracks. A nil slice stays nil.
func CloneTracks(in []Track) []Track {
	if in == nil {
		return nil
	}
	out := make([]Track, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func cloneImages(in []Image) []Image {
	if in == nil {
		return nil
	}
	out := make([]Image, len(in))
	for i, img := range in {
		out[i] = Image{URL: img.URL, Height: cloneInt(img.Height), Width: cloneInt(img.Width)}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func cloneRestrictions(r *Restrictions) *Restrictions {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
