package content

import "testing"

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "escaped phrase",
			url:  "https://images.unsplash.com/photo-1?w=1080&ixid=M3wwfDF8c2VhcmNofDEyfHxtaXN0eSUyMG1vdW50YWlufGVufDB8fHwx&q=85",
			want: "misty mountain",
		},
		{
			name: "padded and lower cased",
			url:  "https://images.unsplash.com/photo-2?ixid=M3wwfDF8c2VhcmNofDR8fFRlYSUyMENlcmVtb255fGVufDA=",
			want: "tea ceremony",
		},
		{
			name: "padding stripped",
			url:  "https://images.unsplash.com/photo-2?ixid=M3wwfDF8c2VhcmNofDR8fFRlYSUyMENlcmVtb255fGVufDA",
			want: "tea ceremony",
		},
		{
			name: "language token ignored",
			url:  "https://images.unsplash.com/photo-3?ixid=M3wwfDF8c2VhcmNofDR8fGVufDA=",
			want: "",
		},
		{name: "no ixid", url: "https://x/a1", want: ""},
		{name: "not base64", url: "https://x/a1?ixid=%%%", want: ""},
		{name: "garbage base64", url: "https://x/a1?ixid=aGVsbG8", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchQuery(tt.url); got != tt.want {
				t.Fatalf("SearchQuery(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
