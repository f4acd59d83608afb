package review

import "strings"

func (in Input) Validate() error {
	if strings.TrimSpace(in.Author) == "" {
		return ErrMissingAuthor
	}
	if in.Rating < 1 || in.Rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(in.Comment) == "" {
		return ErrMissingComment
	}
	return nil
}
