package puzzle

// FragmentsTotal is the number of picture fragments hidden in the room.
const FragmentsTotal = 5

// FragmentsComplete reports whether n collected fragments finish the picture.
func FragmentsComplete(n int) bool {
	return n >= FragmentsTotal
}
