package utils

const ShortSlashDateLayout = "02/01/2006"
const ShortDashDateLayout = "2006-01-02"

// BrowserUserAgent is sent upstream; the BCB API rejects requests without one.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
