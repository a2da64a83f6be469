package iwb

// Version is the converter release version reported by the command-line
// tools.
const Version = "0.2.0"
