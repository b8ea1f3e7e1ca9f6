package barcode

// Format is the symbology a code was read as.
type Format string

const (
	FormatEAN13   Format = "ean_13"
	FormatEAN8    Format = "ean_8"
	FormatUPCA    Format = "upc_a"
	FormatCode128 Format = "code_128"
	FormatQR      Format = "qr_code"
	FormatUnknown Format = "unknown"
)

// maxCode128Len is the longest payload we treat as a linear barcode.
const maxCode128Len = 48

// Detect guesses the symbology of a decoded code from its shape.
// Scanners that report the format should be trusted over this.
func Detect(code string) Format {
	if code == "" {
		return FormatUnknown
	}

	if isDigits(code) {
		switch len(code) {
		case 13:
			return FormatEAN13
		case 12:
			return FormatUPCA
		case 8:
			return FormatEAN8
		}
	}

	if len(code) <= maxCode128Len && isPrintableASCII(code) {
		return FormatCode128
	}

	return FormatQR
}

// ValidCheckDigit reports whether an EAN-8, UPC-A or EAN-13 code carries a
// correct GS1 mod-10 check digit.
func ValidCheckDigit(code string) bool {
	switch len(code) {
	case 8, 12, 13:
	default:
		return false
	}

	if !isDigits(code) {
		return false
	}

	sum := 0
	weight := 3

	for i := len(code) - 2; i >= 0; i-- {
		sum += int(code[i]-'0') * weight
		weight = 4 - weight
	}

	check := (10 - sum%10) % 10

	return check == int(code[len(code)-1]-'0')
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return s != ""
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}

	return true
}
