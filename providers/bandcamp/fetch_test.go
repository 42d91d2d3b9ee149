package bandcamp

import "testing"

const searchPage = `
<li class="searchresult data-search">
  <a class="artcont" href="https://sleep.bandcamp.com/album/dopesmoker?from=search&search_item_id=1">
    <div class="art">
      <img src="https://f4.bcbits.com/img/a1234_2.jpg">
    </div>
  </a>
  <div class="result-info">
    <div class="itemtype">ALBUM</div>
    <div class="heading">
      <a href="https://sleep.bandcamp.com/album/dopesmoker?from=search">Dopesmoker</a>
    </div>
  </div>
</li>
`

func TestParsePage(t *testing.T) {
	link, image := ParsePage(searchPage)
	if link != "https://sleep.bandcamp.com/album/dopesmoker" {
		t.Errorf("unexpected link %q", link)
	}
	if image != "https://f4.bcbits.com/img/a1234_2.jpg" {
		t.Errorf("unexpected image %q", image)
	}
}

func TestParsePageNoResults(t *testing.T) {
	link, image := ParsePage(`<html><body>No results for your search.</body></html>`)
	if link != "" || image != "" {
		t.Errorf("expected empty results, got %q / %q", link, image)
	}
}
